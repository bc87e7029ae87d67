// Package prim is a thin convenience layer over engine.VM.DefinePrimitiveWord,
// grounded on the teacher's compileBuiltins loop (first.go), which likewise
// separates "how a builtin gets wired in" from "what the builtin table
// contains." Any host package, not just a CLI's main, can use Register to
// add callable functionality before the first Run.
package prim

import "github.com/jcorbin/exst/internal/engine"

// Func is a host callback bound to a word, given full access to the VM.
type Func[E any] engine.PrimitiveFunc[E]

// Def describes one primitive word to register.
type Def[E any] struct {
	Name      string
	Immediate bool
	Doc       string
	Fn        Func[E]
}

// Register defines one primitive word on vm.
func Register[E any](vm *engine.VM[E], name string, immediate bool, doc string, fn Func[E]) {
	vm.DefinePrimitiveWord(name, immediate, doc, engine.PrimitiveFunc[E](fn))
}

// RegisterAll defines every primitive in defs, in order, so later entries
// may reference (via closures capturing vm) words defined earlier.
func RegisterAll[E any](vm *engine.VM[E], defs []Def[E]) {
	for _, d := range defs {
		Register(vm, d.Name, d.Immediate, d.Doc, d.Fn)
	}
}
