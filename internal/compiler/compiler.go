// Package compiler implements the pure (token, recursible) -> (instruction,
// immediate) translation, grounded on the teacher's read()/literal()
// (first.go, internals.go): the teacher's single "look up then pushint or
// call" branch generalizes directly, since the tokenizer here has already
// parsed Int/Str tokens instead of leaving literal-vs-word disambiguation
// to a combined scan+parse step.
package compiler

import (
	"github.com/jcorbin/exst/internal/dict"
	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/value"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Compile translates one token into one instruction, given the local and
// word dictionaries. When recursible is true, word lookups are
// reservation-aware (to permit a word to call itself before its definition
// completes); otherwise only committed entries are visible.
//
// Returns the instruction and whether it is immediate (should be evaluated
// now rather than appended to the code buffer).
func Compile[E any](tok token.Token, locals *dict.Local, words *dict.Dict, recursible bool) (value.Instruction[E], bool, error) {
	switch tok.Kind {
	case token.KindInt:
		return value.MakePush[E](value.NewInt[E](tok.Int)), false, nil

	case token.KindString:
		return value.MakePush[E](value.NewStr[E](tok.Str)), false, nil

	case token.KindSymbol:
		if rel, ok := locals.Find(tok.Str); ok {
			return value.MakeLocalRef[E](rel), false, nil
		}

		var (
			w   dict.Word
			err error
		)
		if recursible {
			w, err = words.FindWithReservation(tok.Str)
		} else {
			w, err = words.Find(tok.Str)
		}
		if err != nil {
			return value.Instruction[E]{}, false, err
		}
		return value.MakeCall[E](w.CodeEntry), w.Immediate, nil

	default:
		return value.Instruction[E]{}, false, vmerr.InstructionError{Message: "compiler: unexpected token kind"}
	}
}
