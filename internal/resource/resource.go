// Package resource implements the abstract resource namespace: named
// character sources resolved through a leading sigil, grounded on the
// teacher's inputOption/pipeInput/namedBuffer constructs (api.go, main.go),
// generalized into a Provider interface the engine depends on. Rune reading
// goes through internal/runeio (the teacher's Name()-aware rune reader,
// carried forward unchanged) and output goes through internal/flushio (the
// teacher's output-option flush discipline from options.go's outputOption),
// so a buffered Stdout/Stderr still gets flushed at the right times. Writes
// go out through runeio.WriteANSIString, the teacher's Core.writeRune
// (core.go) generalized from one rune to a whole string, so control
// characters from script-driven output stay terminal-safe.
package resource

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcorbin/exst/internal/flushio"
	"github.com/jcorbin/exst/internal/runeio"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Provider opens named resources as character sources and exposes output
// sinks, per the spec's Resources interface.
type Provider interface {
	WriteStdout(s string) error
	WriteStderr(s string) error
	GetTokenIterator(name string) (io.RuneReader, error)
	GetString(name string) (string, error)
}

// Standard is the default Provider, resolving the sigil grammar documented
// in spec.md §4.3:
//
//	:NAME   relative to Root
//	$NAME   in-memory string keyed by the full name (including $)
//	%STDIN  process standard input
//	&NAME   environment variable NAME
//	NAME    filesystem path as given
type Standard struct {
	Root    string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Strings map[string]string

	stdinRunes runeio.Reader        // lazily wraps Stdin once, so repeated %STDIN opens (debug-loop re-entry) don't lose buffered input
	stdout     flushio.WriteFlusher // lazily wraps Stdout
	stderr     flushio.WriteFlusher // lazily wraps Stderr
}

// NewStandard constructs a Standard provider rooted at root, reading from
// stdin/writing to stdout/stderr, with an initial set of $-named strings.
func NewStandard(root string, stdin io.Reader, stdout, stderr io.Writer, strs map[string]string) *Standard {
	if strs == nil {
		strs = make(map[string]string)
	}
	return &Standard{Root: root, Stdin: stdin, Stdout: stdout, Stderr: stderr, Strings: strs}
}

func (s *Standard) WriteStdout(str string) error {
	if s.stdout == nil {
		s.stdout = flushio.NewWriteFlusher(s.Stdout)
	}
	_, err := runeio.WriteANSIString(s.stdout, str)
	return err
}

func (s *Standard) WriteStderr(str string) error {
	if s.stderr == nil {
		s.stderr = flushio.NewWriteFlusher(s.Stderr)
	}
	_, err := runeio.WriteANSIString(s.stderr, str)
	return err
}

// Flush flushes any buffered Stdout/Stderr writes, per the teacher's
// deferred vm.out.Flush() around output-option swaps (options.go). A host
// should call this before exiting, since flushio.NewWriteFlusher may return
// a genuinely buffered *bufio.Writer.
func (s *Standard) Flush() error {
	var err error
	if s.stdout != nil {
		err = s.stdout.Flush()
	}
	if s.stderr != nil {
		if ferr := s.stderr.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// GetString returns the raw backing string for name, if name is a $-sigil
// resource; otherwise it reads the resolved resource fully into a string.
func (s *Standard) GetString(name string) (string, error) {
	if strings.HasPrefix(name, "$") {
		if v, ok := s.Strings[name]; ok {
			return v, nil
		}
		return "", vmerr.ResourceNotFound{Name: name}
	}
	r, err := s.open(name)
	if err != nil {
		return "", err
	}
	if cl, ok := r.(io.Closer); ok {
		defer cl.Close()
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", vmerr.IOError{Err: err}
	}
	return sb.String(), nil
}

// GetTokenIterator opens name as a rune source suitable for a tokenizer.
func (s *Standard) GetTokenIterator(name string) (io.RuneReader, error) {
	r, err := s.open(name)
	if err != nil {
		return nil, err
	}
	return runeio.NewReader(r), nil
}

func (s *Standard) open(name string) (io.Reader, error) {
	switch {
	case name == "%STDIN":
		if s.Stdin == nil {
			return nil, vmerr.ResourceNotFound{Name: name}
		}
		if s.stdinRunes == nil {
			s.stdinRunes = runeio.NewReader(s.Stdin)
		}
		return s.stdinRunes, nil
	case strings.HasPrefix(name, "$"):
		v, ok := s.Strings[name]
		if !ok {
			return nil, vmerr.ResourceNotFound{Name: name}
		}
		return strings.NewReader(v), nil
	case strings.HasPrefix(name, "&"):
		v, ok := os.LookupEnv(name[1:])
		if !ok {
			return nil, vmerr.ResourceNotFound{Name: name}
		}
		return strings.NewReader(v), nil
	case strings.HasPrefix(name, ":"):
		path := filepath.Join(s.Root, name[1:])
		f, err := os.Open(path)
		if err != nil {
			return nil, vmerr.ResourceNotFound{Name: name}
		}
		return f, nil
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, vmerr.ResourceNotFound{Name: name}
		}
		return f, nil
	}
}

// SetString seeds or overwrites an in-memory $-resource. name must include
// the leading "$".
func (s *Standard) SetString(name, value string) {
	if s.Strings == nil {
		s.Strings = make(map[string]string)
	}
	s.Strings[name] = value
}
