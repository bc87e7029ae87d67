package prim

import (
	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/engine"
	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/value"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Builtin registers the minimal primitive set exercised by the engine's own
// tests: arithmetic's "+" and the trap word used in the trap-resume
// scenario, plus a handful of words that exist only to give the engine's
// §6 primitive-hook surface (Invoke, EnvGet/EnvSet, NextToken/Tokenizer) a
// real caller, the way a host's standard word library would use them.
// Grounded on the teacher's FIRST-level builtins (first.go's sub, under0,
// pick), cut down to the handful spec.md's own test scenarios name plus
// these hook-exercising additions.
func Builtin[E any](vm *engine.VM[E]) {
	Register(vm, "+", false, "pop two ints, push their sum", add[E])

	// trap's body is the Trap instruction itself, not a CallPrimitive,
	// matching spec.md's "trap resume" scenario definition verbatim.
	vm.DefineWord("trap", false, "unconditionally trap", value.MakeTrap[E](vmerr.UserTrap))

	// invoke pops a CodeAddress and runs it to completion via vm.Invoke,
	// the way the specification's "execute" style word calls back into
	// VM-defined code from a primitive rather than from a Call/Exec
	// instruction already in the code stream.
	Register(vm, "invoke", false, "pop a code address and run it to completion", invoke[E])

	// local@/local! read and write the calling frame's environment slots
	// by explicit offset, through the same EnvGet/EnvSet accessors LocalRef
	// uses internally -- LocalRef only ever reads, so local! is the one
	// path to a write.
	Register(vm, "local@", false, "fetch the caller frame's local at the given offset", localGet[E])
	Register(vm, "local!", false, "store into the caller frame's local at the given offset", localSet[E])

	// "(" is an immediate comment reader: it consumes raw runes up to the
	// matching ")" directly off the active tokenizer, the way a host's
	// standard word library reads delimited text that isn't itself a
	// token. Grounded on the teacher's markScanner-style delimited reads
	// (io.go, now superseded), generalized to the Tokenizer hook.
	Register(vm, "(", true, "discard a comment up to the matching )", commentWord[E])

	// "'" is an immediate tick: it reads the next token itself (bypassing
	// the compiler's own dispatch) and pushes its literal value, the way a
	// host primitive that needs to consume tokens itself (e.g. a
	// word-header parser) would use NextToken.
	Register(vm, "'", true, "push the next token's literal value", tick[E])
}

func invoke[E any](vm *engine.VM[E]) error {
	top, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	ca, ok := top.CodeAddress()
	if !ok {
		return vmerr.TypeMismatch{Expected: "CodeAddress", Actual: top.Kind().String()}
	}
	return vm.Invoke(ca)
}

func callerEnvBase[E any](vm *engine.VM[E]) (addr.EnvMark, error) {
	frame, err := vm.Returns.Peek()
	if err != nil {
		return 0, err
	}
	return frame.SavedEnvBase, nil
}

func popOffset[E any](vm *engine.VM[E]) (addr.EnvRel, error) {
	top, err := vm.Stack.Pop()
	if err != nil {
		return 0, err
	}
	n, ok := top.Int()
	if !ok {
		return 0, vmerr.TypeMismatch{Expected: "Int", Actual: top.Kind().String()}
	}
	return addr.EnvRel(n), nil
}

func localGet[E any](vm *engine.VM[E]) error {
	rel, err := popOffset(vm)
	if err != nil {
		return err
	}
	base, err := callerEnvBase(vm)
	if err != nil {
		return err
	}
	v, err := vm.EnvGet(base, rel)
	if err != nil {
		return err
	}
	vm.Stack.Push(v)
	return nil
}

func localSet[E any](vm *engine.VM[E]) error {
	rel, err := popOffset(vm)
	if err != nil {
		return err
	}
	v, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	base, err := callerEnvBase(vm)
	if err != nil {
		return err
	}
	_, err = vm.EnvSet(base, rel, v)
	return err
}

func commentWord[E any](vm *engine.VM[E]) error {
	_, err := vm.Tokenizer().SkipUntil(')')
	return err
}

func tick[E any](vm *engine.VM[E]) error {
	tok, err := vm.NextToken()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case token.KindInt:
		vm.Stack.Push(value.NewInt[E](tok.Int))
	case token.KindString, token.KindSymbol:
		vm.Stack.Push(value.NewStr[E](tok.Str))
	default:
		return vmerr.TypeMismatch{Expected: "literal token", Actual: "comment"}
	}
	return nil
}

func add[E any](vm *engine.VM[E]) error {
	b, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	ai, ok := a.Int()
	if !ok {
		return vmerr.TypeMismatch{Expected: "Int", Actual: a.Kind().String()}
	}
	bi, ok := b.Int()
	if !ok {
		return vmerr.TypeMismatch{Expected: "Int", Actual: b.Kind().String()}
	}
	vm.Stack.Push(value.NewInt[E](ai + bi))
	return nil
}
