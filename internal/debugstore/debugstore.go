// Package debugstore maps code addresses back to source coordinates and
// tracks the current script-call chain, grounded on the teacher's
// wordOf/step's "funcName @%v" trace rendering (internals.go), generalized
// from a live memory scan into an explicit append-only table.
package debugstore

import (
	"fmt"
	"strings"

	"github.com/jcorbin/exst/internal/addr"
)

// Coord is the source location recorded for a single code entity.
type Coord struct {
	ScriptHandle int
	Line, Column int
}

// Store is the debug-info table: a sparse append-only map of code address
// to Coord, plus the monotonic script-name list and the current call chain.
type Store struct {
	coords  map[addr.Code]Coord
	scripts []string
	chain   []int
}

// Record associates addr with a source coordinate. Debug info is
// append-only: a later Record for the same address simply replaces the
// mapping (this happens only across distinct compilations of overlapping
// addresses, which the engine never does in practice).
func (s *Store) Record(a addr.Code, c Coord) {
	if s.coords == nil {
		s.coords = make(map[addr.Code]Coord)
	}
	s.coords[a] = c
}

// Lookup returns the recorded coordinate for addr, if any.
func (s *Store) Lookup(a addr.Code) (Coord, bool) {
	c, ok := s.coords[a]
	return c, ok
}

// InternScript appends name to the monotonic script-name list and returns
// its handle.
func (s *Store) InternScript(name string) int {
	s.scripts = append(s.scripts, name)
	return len(s.scripts) - 1
}

// ScriptName returns the name registered under handle.
func (s *Store) ScriptName(handle int) string {
	if handle < 0 || handle >= len(s.scripts) {
		return ""
	}
	return s.scripts[handle]
}

// PushScript records entry into a nested script, extending the call chain.
func (s *Store) PushScript(handle int) { s.chain = append(s.chain, handle) }

// PopScript pops one script off the call chain, as done on script return.
func (s *Store) PopScript() {
	if n := len(s.chain); n > 0 {
		s.chain = s.chain[:n-1]
	}
}

// Chain returns the current script-call chain, outermost first.
func (s *Store) Chain() []int {
	out := make([]int, len(s.chain))
	copy(out, s.chain)
	return out
}

// ChainString renders the current call chain as a breadcrumb, e.g.
// "main.fs > util.fs > $INLINE".
func (s *Store) ChainString() string {
	names := make([]string, len(s.chain))
	for i, h := range s.chain {
		names[i] = s.ScriptName(h)
	}
	return strings.Join(names, " > ")
}

func (c Coord) String() string { return fmt.Sprintf("script#%d:%d:%d", c.ScriptHandle, c.Line, c.Column) }
