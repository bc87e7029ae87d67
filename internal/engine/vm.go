// Package engine implements the VM core: the owner of every buffer/stack,
// the instruction dispatch loop, and the interpret/compile/return/stop state
// machine, grounded on the teacher's vm.step()/vm.exec() dispatch
// (internals.go) and vm.call/vm.exit return-stack discipline (first.go),
// generalized from one flat int-addressed memory to the specification's
// distinct typed buffers and stacks.
package engine

import (
	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/buffer"
	"github.com/jcorbin/exst/internal/debugstore"
	"github.com/jcorbin/exst/internal/dict"
	"github.com/jcorbin/exst/internal/resource"
	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/value"
)

// Mode is the compile-time/interpret-time dispatch state.
type Mode int

const (
	Interpretation Mode = iota
	Compilation
	RecursableCompilation
	Return
	Stop
)

func (m Mode) String() string {
	switch m {
	case Interpretation:
		return "Interpretation"
	case Compilation:
		return "Compilation"
	case RecursableCompilation:
		return "RecursableCompilation"
	case Return:
		return "Return"
	case Stop:
		return "Stop"
	default:
		return "Mode(?)"
	}
}

// ExecState is the outer token-iteration/code-execution state.
type ExecState int

const (
	TokenIteration ExecState = iota
	CodeExecution
)

func (s ExecState) String() string {
	if s == TokenIteration {
		return "TokenIteration"
	}
	return "CodeExecution"
}

// Frame is a return-stack element: the instruction to resume at, and the
// environment-stack base to roll back to on Return.
type Frame struct {
	ReturnPC     addr.Code
	SavedEnvBase addr.EnvMark
}

// LongJumpFrame is a long-jump-stack element: where to resume, and the
// stack depths to unwind to, preserving only the data-stack top.
type LongJumpFrame struct {
	ReturnPC         addr.Code
	SavedReturnDepth uint
	SavedEnvDepth    uint
	SavedDataDepth   uint
}

type scriptFrame[E any] struct {
	tokenizer *token.Tokenizer
	mode      Mode
	state     ExecState
	pc        addr.Code
}

// PrimitiveFunc is a host callback bound to a CallPrimitive instruction. It
// may use the full VM surface: pop/push data-stack values, read the next
// token, append to the code buffer, mutate the dictionary, call/execute
// code. An error it returns flows out through Run unmodified.
type PrimitiveFunc[E any] func(vm *VM[E]) error

// VM owns every piece of mutable engine state: all stacks/buffers, the
// dictionary, the local dictionary, the debug store, the script-call stack,
// the active token iterator, the program counter, and the two mode enums.
type VM[E any] struct {
	Code  buffer.Buffer[value.Instruction[E]]
	Data  buffer.Buffer[value.Value[E]] // addressed by DataAddress; reserved for the out-of-scope standard word library (e.g. variable/array storage words)
	Stack buffer.Buffer[value.Value[E]]

	Returns   buffer.Buffer[Frame]
	Env       buffer.Buffer[value.Value[E]]
	Control   buffer.Buffer[addr.Code] // reserved for the out-of-scope compile-time if/else/endif control words
	LongJumps buffer.Buffer[LongJumpFrame]

	Words  dict.Dict
	Locals dict.Local
	Debug  debugstore.Store

	Resources resource.Provider
	Logf      func(mess string, args ...interface{})

	tokenizer   *token.Tokenizer
	scriptStack []scriptFrame[E]

	pc    addr.Code
	mode  Mode
	state ExecState
}

// New constructs a VM bound to the given resource provider. The VM has no
// active script until CallScript is invoked.
func New[E any](resources resource.Provider) *VM[E] {
	return &VM[E]{Resources: resources, pc: addr.Root}
}

// PC returns the current program counter.
func (vm *VM[E]) PC() addr.Code { return vm.pc }

// Mode returns the current compile/interpret dispatch mode.
func (vm *VM[E]) Mode() Mode { return vm.mode }

// SetMode sets the compile/interpret dispatch mode; primitives use this to
// enter or leave compilation (e.g. a ":"-style word definer switching to
// RecursableCompilation).
func (vm *VM[E]) SetMode(m Mode) { vm.mode = m }

// State returns the outer token-iteration/code-execution state.
func (vm *VM[E]) State() ExecState { return vm.state }

// SetState sets the outer token-iteration/code-execution state.
func (vm *VM[E]) SetState(s ExecState) { vm.state = s }

func (vm *VM[E]) logf(mess string, args ...interface{}) {
	if vm.Logf != nil {
		vm.Logf(mess, args...)
	}
}
