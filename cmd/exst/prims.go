package main

import (
	"strings"

	"github.com/jcorbin/exst/internal/engine"
	"github.com/jcorbin/exst/internal/prim"
	"github.com/jcorbin/exst/internal/value"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Ext is the host extension type this CLI instantiates the engine with. It
// carries no payload of its own; it exists so vmerr.ExtensionError[Ext] has
// somewhere to live (see getvar below), matching the engine's Extension(T)
// variant rather than leaving E uninhabited.
type Ext = struct{}

// registerCLIPrimitives adds the handful of words exst's command-line front
// end needs beyond internal/prim.Builtin, grounded on the teacher's
// compileBuiltins registration loop (first.go) generalized to this host.
func registerCLIPrimitives(vm *engine.VM[Ext]) {
	prim.Builtin(vm)

	// getvar pops a Str name, resolves it as a "&"-sigil environment
	// variable through the resource provider, and pushes the result as a
	// Str. A missing variable surfaces as vmerr.ExtensionError[Ext], giving
	// the host's own error taxonomy a real path through the generic variant
	// instead of it being declared but never constructed.
	prim.Register(vm, "getvar", false, "resolve a &-prefixed environment variable", func(vm *engine.VM[Ext]) error {
		top, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		name, ok := top.Str()
		if !ok {
			return vmerr.TypeMismatch{Expected: "Str", Actual: top.Kind().String()}
		}
		v, err := vm.Resources.GetString("&" + strings.TrimPrefix(name, "&"))
		if err != nil {
			return vmerr.ExtensionError[Ext]{Err: err}
		}
		vm.Stack.Push(value.NewStr[Ext](v))
		return nil
	})

	// print/eprint pop a Str and write it out through the Resources
	// interface's write_stdout/write_stderr hooks (spec.md §6's primitive
	// hooks), giving those two methods an actual caller beyond the
	// resource package's own tests -- the standard word library spec.md
	// scopes out is exactly where such output words belong.
	prim.Register(vm, "print", false, "write a Str to stdout", func(vm *engine.VM[Ext]) error {
		return writeStr(vm, vm.Resources.WriteStdout)
	})
	prim.Register(vm, "eprint", false, "write a Str to stderr", func(vm *engine.VM[Ext]) error {
		return writeStr(vm, vm.Resources.WriteStderr)
	})
}

func writeStr(vm *engine.VM[Ext], write func(string) error) error {
	top, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	s, ok := top.Str()
	if !ok {
		return vmerr.TypeMismatch{Expected: "Str", Actual: top.Kind().String()}
	}
	return write(s)
}
