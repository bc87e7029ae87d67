// Package token implements the engine's tokenizer: a plain stateful scanner
// over a fallible rune source with a one-character pushback field, grounded
// on the teacher's vm.scan() and internal/fileinput rune-pushback plumbing,
// generalized from "whitespace-delimited word" to the full token grammar
// (ints, strings, comments, symbols) with line/column tracking.
package token

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jcorbin/exst/internal/vmerr"
)

// Kind tags which variant a Token holds.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindSymbol
	KindComment
)

// Token is one lexed unit, carrying its originating line/column.
type Token struct {
	Kind        Kind
	Int         int32
	Str         string // string literal contents, symbol text, or comment text
	Line, Column int
}

// RuneSource is a fallible character stream with line/column tracking
// expected of callers; Tokenizer tracks position itself from the runes it
// reads, so RuneSource need only supply runes.
type RuneSource interface {
	ReadRune() (r rune, size int, err error)
}

// Tokenizer lexes a RuneSource into tokens. It is a plain object, not a
// coroutine: each call to Next either returns a token or reports an error or
// EOF. The one-character pushback is an explicit field.
type Tokenizer struct {
	src RuneSource

	line, col  int
	pushed     bool
	pushedRune rune
}

// New constructs a Tokenizer reading from src, with position starting at
// line 1, column 0 (column is incremented before the first rune of a line).
func New(src RuneSource) *Tokenizer {
	return &Tokenizer{src: src, line: 1, col: 0}
}

func (t *Tokenizer) readRune() (rune, error) {
	if t.pushed {
		t.pushed = false
		return t.pushedRune, nil
	}
	r, _, err := t.src.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' || r == '\r' {
		t.line++
		t.col = 0
	} else {
		t.col++
	}
	return r, nil
}

func (t *Tokenizer) unread(r rune) {
	t.pushed = true
	t.pushedRune = r
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// SkipUntil consumes characters up to and including c, returning the
// substring before c. Used by immediate words (e.g. a `(` ... `)` comment
// reader) to capture arbitrary delimited bodies.
func (t *Tokenizer) SkipUntil(c rune) (string, error) {
	var sb strings.Builder
	for {
		r, err := t.readRune()
		if err != nil {
			return sb.String(), vmerr.IOError{Line: t.line, Column: t.col, Err: err}
		}
		if r == c {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// Next returns the next token, discarding comments.
func (t *Tokenizer) Next() (Token, error) {
	for {
		tok, err := t.NextWithComment()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind != KindComment {
			return tok, nil
		}
	}
}

// NextWithComment returns the next token, including comments as distinct
// items.
func (t *Tokenizer) NextWithComment() (Token, error) {
	r, err := t.skipSeparators()
	if err != nil {
		return Token{}, err
	}

	startLine, startCol := t.line, t.col

	if r == '#' {
		var sb strings.Builder
		for {
			r, err := t.readRune()
			if err == io.EOF || r == '\n' {
				if err == nil {
					t.unread(r)
				}
				break
			} else if err != nil {
				return Token{}, vmerr.IOError{Line: t.line, Column: t.col, Err: err}
			}
			sb.WriteRune(r)
		}
		return Token{Kind: KindComment, Str: sb.String(), Line: startLine, Column: startCol}, nil
	}

	if r == '"' {
		return t.scanString(startLine, startCol)
	}

	var sb strings.Builder
	sb.WriteRune(r)
	for {
		r, err := t.readRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return Token{}, vmerr.IOError{Line: t.line, Column: t.col, Err: err}
		} else if isSeparator(r) {
			break
		}
		sb.WriteRune(r)
	}

	word := sb.String()
	if n, ok := parseInt(word); ok {
		return Token{Kind: KindInt, Int: n, Line: startLine, Column: startCol}, nil
	}
	return Token{Kind: KindSymbol, Str: word, Line: startLine, Column: startCol}, nil
}

func (t *Tokenizer) skipSeparators() (rune, error) {
	for {
		r, err := t.readRune()
		if err != nil {
			return 0, err
		}
		if !isSeparator(r) {
			return r, nil
		}
	}
}

func (t *Tokenizer) scanString(startLine, startCol int) (Token, error) {
	var sb strings.Builder
	var raw strings.Builder
	for {
		r, err := t.readRune()
		if err == io.EOF {
			return Token{}, vmerr.StringLiteralIsNotClosed{Partial: raw.String()}
		} else if err != nil {
			return Token{}, vmerr.IOError{Line: t.line, Column: t.col, Err: err}
		}
		raw.WriteRune(r)
		if r == '"' {
			return Token{Kind: KindString, Str: sb.String(), Line: startLine, Column: startCol}, nil
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}

		r, err = t.readRune()
		if err == io.EOF {
			return Token{}, vmerr.StringLiteralIsNotClosed{Partial: raw.String()}
		} else if err != nil {
			return Token{}, vmerr.IOError{Line: t.line, Column: t.col, Err: err}
		}
		raw.WriteRune(r)
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			var hex strings.Builder
			for i := 0; i < 4; i++ {
				r, err := t.readRune()
				if err == io.EOF {
					return Token{}, vmerr.CannotParseUnicodeEscapeChar{Partial: hex.String()}
				} else if err != nil {
					return Token{}, vmerr.IOError{Line: t.line, Column: t.col, Err: err}
				}
				raw.WriteRune(r)
				hex.WriteRune(r)
			}
			n, err := strconv.ParseUint(hex.String(), 16, 32)
			if err != nil {
				return Token{}, vmerr.CannotParseUnicodeEscapeChar{Partial: hex.String()}
			}
			sb.WriteRune(rune(n))
		default:
			sb.WriteRune(r)
		}
	}
}

// parseInt implements the spec's integer grammar: optional sign, optional
// radix prefix (0b/0o/0x), underscore-between-digits and leading zeros
// ignored, must consume the whole token. Anything that doesn't parse under
// that grammar is left for the caller to treat as a symbol.
func parseInt(tok string) (int32, bool) {
	s := tok
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	radix := 10
	switch {
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		radix, s = 2, s[2:]
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		radix, s = 8, s[2:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		radix, s = 16, s[2:]
	}
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(s, radix, 64)
	if err != nil {
		return 0, false
	}
	v := int64(n)
	if neg {
		v = -v
	}
	if v < int64(int32(-2147483648)) || v > int64(int32(2147483647)) {
		return int32(v), true // two's-complement wrap is acceptable for 32-bit literals
	}
	return int32(v), true
}
