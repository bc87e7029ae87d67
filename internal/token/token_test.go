package token_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/vmerr"
)

func TestEmptyInputYieldsNoTokens(t *testing.T) {
	tz := token.New(strings.NewReader(""))
	_, err := tz.Next()
	assert.True(t, errors.Is(err, io.EOF), "expected EOF, got %v", err)
}

func TestUnterminatedStringLiteral(t *testing.T) {
	tz := token.New(strings.NewReader(`"abc`))
	_, err := tz.Next()
	var want vmerr.StringLiteralIsNotClosed
	require.ErrorAs(t, err, &want)
	assert.Equal(t, `abc`, want.Partial)
}

func TestEscapeDecoding(t *testing.T) {
	tz := token.New(strings.NewReader("\"\\" + "u0041\\" + "u0042\""))
	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, token.KindString, tok.Kind)
	assert.Equal(t, "AB", tok.Str)
}

func TestStringEscapesPlain(t *testing.T) {
	tz := token.New(strings.NewReader(`"a\nb\tc\rd"`))
	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\rd", tok.Str)
}

func TestUnicodeEscapeSequence(t *testing.T) {
	src := "\"\\u0041\\u0042\""
	tz := token.New(strings.NewReader(src))
	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, "AB", tok.Str)
}

func TestMalformedUnicodeEscape(t *testing.T) {
	tz := token.New(strings.NewReader(`"\u004"`))
	_, err := tz.Next()
	var want vmerr.CannotParseUnicodeEscapeChar
	require.ErrorAs(t, err, &want)
	assert.Equal(t, `004"`, want.Partial)
}

func TestIntegerLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want int32
	}{
		{"0", 0},
		{"42", 42},
		{"-7", -7},
		{"+7", 7},
		{"0b101", 5},
		{"0o17", 15},
		{"0x1F", 31},
		{"1_000", 1000},
		{"007", 7},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			tz := token.New(strings.NewReader(c.src))
			tok, err := tz.Next()
			require.NoError(t, err)
			require.Equal(t, token.KindInt, tok.Kind, "expected int token for %q", c.src)
			assert.Equal(t, c.want, tok.Int)
		})
	}
}

func TestSymbolFallback(t *testing.T) {
	tz := token.New(strings.NewReader("hello-world"))
	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, token.KindSymbol, tok.Kind)
	assert.Equal(t, "hello-world", tok.Str)
}

func TestLineCommentsAreSkippedByNext(t *testing.T) {
	tz := token.New(strings.NewReader("# a comment\n42"))
	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, token.KindInt, tok.Kind)
	assert.Equal(t, int32(42), tok.Int)
}

func TestNextWithCommentReportsComments(t *testing.T) {
	tz := token.New(strings.NewReader("# hi\n"))
	tok, err := tz.NextWithComment()
	require.NoError(t, err)
	assert.Equal(t, token.KindComment, tok.Kind)
	assert.Equal(t, " hi", tok.Str)
}
