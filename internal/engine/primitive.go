package engine

import (
	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/dict"
	"github.com/jcorbin/exst/internal/value"
)

// DefineWord reserves name, appends body followed by Return and
// DebugLabel(WordTerminator) to the code buffer, and commits the
// reservation -- the shape every word, primitive or composite, ends in.
// Grounded on the teacher's compileEntry (internals.go), which likewise
// writes a header then a fixed trailer around caller-supplied code.
func (vm *VM[E]) DefineWord(name string, immediate bool, doc string, body ...value.Instruction[E]) addr.Code {
	entry := addr.Code(vm.Code.Here())
	vm.Words.Reserve(name, dict.Word{CodeEntry: entry, Immediate: immediate, Doc: doc})

	for _, ins := range body {
		vm.Code.Push(ins)
	}
	vm.Code.Push(value.MakeReturn[E]())
	vm.Code.Push(value.MakeDebugLabel[E](value.WordTerminator))

	if err := vm.Words.Complete(); err != nil {
		// Reserve/Complete are called back to back with no intervening
		// reservation, so Complete can only fail if that invariant breaks.
		panic(err)
	}
	return entry
}

// DefinePrimitiveWord is the most common way a host adds callable
// functionality to the dictionary: a word whose entire body is a single
// CallPrimitive bound to fn. Grounded on the teacher's
// compileBuiltins/vmCodeTable registration loop (first.go), generalized
// from a fixed opcode table to an open host-supplied registry.
func (vm *VM[E]) DefinePrimitiveWord(name string, immediate bool, doc string, fn PrimitiveFunc[E]) addr.Code {
	wrapped := value.Primitive[E](func(host any) error {
		return fn(host.(*VM[E]))
	})
	return vm.DefineWord(name, immediate, doc, value.MakeCallPrimitive[E](wrapped))
}
