package engine

import (
	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/debugstore"
	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/value"
)

// CallScript opens name through the resource provider, installs it as the
// active token iterator, and pushes the prior iterator/mode/state/pc onto
// the script-call stack so execReturn can restore them on EOF. The new
// script starts in Interpretation/TokenIteration, matching reset_vm_state's
// defaults. Grounded on the teacher's inputOption chaining (api.go), which
// likewise threads one resource at a time through the scanner.
func (vm *VM[E]) CallScript(name string) error {
	rr, err := vm.Resources.GetTokenIterator(name)
	if err != nil {
		return err
	}
	handle := vm.Debug.InternScript(name)
	vm.Debug.PushScript(handle)
	if vm.tokenizer != nil {
		// Nothing to resume when this is the first script the VM has ever
		// run; leaving no frame means its EOF goes straight to Stop instead
		// of restoring a bogus pre-entry state.
		vm.scriptStack = append(vm.scriptStack, scriptFrame[E]{
			tokenizer: vm.tokenizer,
			mode:      vm.mode,
			state:     vm.state,
			pc:        vm.pc,
		})
	}
	vm.tokenizer = token.New(rr)
	vm.mode = Interpretation
	vm.state = TokenIteration
	vm.logf("call_script %s", name)
	return nil
}

// NextToken reads the next token from the currently active script, for use
// by primitives that need to consume tokens themselves (e.g. a comment
// reader, or a word-header parser).
func (vm *VM[E]) NextToken() (token.Token, error) {
	return vm.tokenizer.Next()
}

// Tokenizer exposes the active tokenizer directly, for primitives needing
// SkipUntil or other tokenizer-specific behavior beyond plain Next.
func (vm *VM[E]) Tokenizer() *token.Tokenizer { return vm.tokenizer }

// Compile appends ins to the code buffer, recording its source coordinate
// in the debug store, and returns the address it was written to.
func (vm *VM[E]) Compile(ins value.Instruction[E], line, column int) addr.Code {
	at := addr.Code(vm.Code.Here())
	vm.Code.Push(ins)
	handle := -1
	if chain := vm.Debug.Chain(); len(chain) > 0 {
		handle = chain[len(chain)-1]
	}
	vm.Debug.Record(at, debugstore.Coord{ScriptHandle: handle, Line: line, Column: column})
	return at
}

// EnvGet reads the environment-stack cell at offset rel from base.
func (vm *VM[E]) EnvGet(base addr.EnvMark, rel addr.EnvRel) (value.Value[E], error) {
	return vm.Env.Get(uint(base) + uint(rel))
}

// EnvSet overwrites the environment-stack cell at offset rel from base.
func (vm *VM[E]) EnvSet(base addr.EnvMark, rel addr.EnvRel, v value.Value[E]) (value.Value[E], error) {
	return vm.Env.Set(uint(base)+uint(rel), v)
}

// Invoke runs the word at code to completion, as if called from outside any
// running code (return pc ROOT), for primitives that need to call back into
// VM-defined code (the specification's "execute" style word).
func (vm *VM[E]) Invoke(code addr.Code) error {
	vm.Returns.Push(Frame{ReturnPC: addr.Root, SavedEnvBase: addr.EnvMark(vm.Env.Here())})
	savedPC, savedState := vm.pc, vm.state
	vm.pc = code
	vm.state = CodeExecution
	err := vm.execCode()
	if err != nil {
		return err
	}
	vm.pc, vm.state = savedPC, savedState
	return nil
}
