package engine

import (
	"errors"
	"io"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/compiler"
	"github.com/jcorbin/exst/internal/value"
	"github.com/jcorbin/exst/internal/vmerr"
)

// Run drives the interpret/compile/return/stop state machine to completion,
// grounded on the teacher's vm.step()'s top-level dispatch (internals.go),
// generalized into the specification's two-level state machine: an outer
// TokenIteration/CodeExecution split, and within TokenIteration, dispatch on
// Mode. Any error returned leaves the VM exactly where execution stopped, so
// a caller (typically a debug REPL) can fix the fault and call Run again.
func (vm *VM[E]) Run() error {
	for {
		switch vm.state {
		case TokenIteration:
			switch vm.mode {
			case Interpretation:
				if err := vm.execInterpret(); err != nil {
					return err
				}
			case Compilation:
				if err := vm.execCompile(false); err != nil {
					return err
				}
			case RecursableCompilation:
				if err := vm.execCompile(true); err != nil {
					return err
				}
			case Return:
				vm.execReturn()
			case Stop:
				vm.reset()
				return nil
			}
		case CodeExecution:
			if err := vm.execCode(); err != nil {
				return err
			}
		}
	}
}

func (vm *VM[E]) reset() {
	vm.mode = Interpretation
	vm.state = TokenIteration
}

func (vm *VM[E]) execInterpret() error {
	tok, err := vm.tokenizer.Next()
	if errors.Is(err, io.EOF) {
		vm.mode = Return
		return nil
	} else if err != nil {
		return err
	}
	ins, _, err := compiler.Compile[E](tok, &vm.Locals, &vm.Words, false)
	if err != nil {
		return err
	}
	return vm.evalInstruction(ins)
}

func (vm *VM[E]) execCompile(recursible bool) error {
	tok, err := vm.tokenizer.Next()
	if errors.Is(err, io.EOF) {
		vm.mode = Return
		return nil
	} else if err != nil {
		return err
	}
	ins, immediate, err := compiler.Compile[E](tok, &vm.Locals, &vm.Words, recursible)
	if err != nil {
		return err
	}
	if immediate {
		return vm.evalInstruction(ins)
	}
	vm.Compile(ins, tok.Line, tok.Column)
	return nil
}

func (vm *VM[E]) execReturn() {
	n := len(vm.scriptStack)
	if n == 0 {
		vm.mode = Stop
		return
	}
	fr := vm.scriptStack[n-1]
	vm.scriptStack = vm.scriptStack[:n-1]
	vm.tokenizer = fr.tokenizer
	vm.mode = fr.mode
	vm.state = fr.state
	vm.pc = fr.pc
	vm.Debug.PopScript()
}

func (vm *VM[E]) execCode() error {
	for !vm.pc.IsRoot() {
		ins, err := vm.Code.Get(uint(vm.pc))
		if err != nil {
			return err
		}
		if err := vm.applyInstruction(ins, false); err != nil {
			return err
		}
		if vm.state != CodeExecution {
			return nil
		}
	}
	vm.state = TokenIteration
	return nil
}

// evalInstruction evaluates a single instruction produced directly from a
// token, outside of a running word's body. It is identical to the runtime
// evaluator used by execCode except for Call (and Exec of a CodeAddress,
// which behaves as Call): a top-level Call pushes a return frame whose
// return pc is ROOT (there is no running code to resume) and switches
// execution_state to CodeExecution so the outer loop runs the called word's
// body to completion.
func (vm *VM[E]) evalInstruction(ins value.Instruction[E]) error {
	return vm.applyInstruction(ins, true)
}

// applyInstruction executes one instruction and advances vm.pc per its
// effect. topLevelCall distinguishes a Call (or an Exec of a CodeAddress)
// evaluated directly from token iteration (return pc is ROOT, and
// CodeExecution is entered) from one encountered while already running code
// (return pc is pc.Next()).
func (vm *VM[E]) applyInstruction(ins value.Instruction[E], topLevelCall bool) error {
	switch ins.Kind {
	case value.Nop, value.DebugLabel:
		vm.pc = vm.pc.Next()
		return nil

	case value.Push:
		vm.Stack.Push(ins.Value)
		vm.pc = vm.pc.Next()
		return nil

	case value.Call:
		retPC := vm.pc.Next()
		if topLevelCall {
			retPC = addr.Root
		}
		vm.Returns.Push(Frame{ReturnPC: retPC, SavedEnvBase: addr.EnvMark(vm.Env.Here())})
		vm.pc = ins.Code
		if topLevelCall {
			vm.state = CodeExecution
		}
		return nil

	case value.CallPrimitive:
		if err := ins.Fn(vm); err != nil {
			return err
		}
		vm.pc = vm.pc.Next()
		return nil

	case value.Return:
		frame, err := vm.Returns.Pop()
		if err != nil {
			return err
		}
		if err := vm.Env.Rollback(uint(frame.SavedEnvBase)); err != nil {
			return err
		}
		vm.pc = frame.ReturnPC
		return nil

	case value.LocalRef:
		frame, err := vm.Returns.Peek()
		if err != nil {
			return err
		}
		v, err := vm.Env.Get(uint(frame.SavedEnvBase) + uint(ins.Local))
		if err != nil {
			return err
		}
		vm.Stack.Push(v)
		vm.pc = vm.pc.Next()
		return nil

	case value.Trap:
		vm.pc = vm.pc.Next()
		return vmerr.Trap{Reason: ins.Trap}

	case value.Branch:
		top, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		vm.pc = vm.pc.Next()
		if !top.IsZero() {
			vm.pc = ins.Code
		}
		return nil

	case value.Jump:
		vm.pc = ins.Code
		return nil

	case value.Exec:
		top, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		if ca, ok := top.CodeAddress(); ok {
			retPC := vm.pc.Next()
			if topLevelCall {
				retPC = addr.Root
			}
			vm.Returns.Push(Frame{ReturnPC: retPC, SavedEnvBase: addr.EnvMark(vm.Env.Here())})
			vm.pc = ca
			if topLevelCall {
				vm.state = CodeExecution
			}
			return nil
		}
		if ea, ok := top.EnvAddress(); ok {
			frame, err := vm.Returns.Peek()
			if err != nil {
				return err
			}
			v, err := vm.Env.Get(uint(frame.SavedEnvBase) + uint(ea))
			if err != nil {
				return err
			}
			vm.Stack.Push(v)
			vm.pc = vm.pc.Next()
			return nil
		}
		vm.Stack.Push(top)
		vm.pc = vm.pc.Next()
		return nil

	case value.SetJump:
		vm.LongJumps.Push(LongJumpFrame{
			ReturnPC:         ins.Code,
			SavedReturnDepth: vm.Returns.Here(),
			SavedEnvDepth:    vm.Env.Here(),
			SavedDataDepth:   vm.Stack.Here(),
		})
		vm.pc = vm.pc.Next()
		return nil

	case value.LongJump:
		frame, err := vm.LongJumps.Pop()
		if err != nil {
			return err
		}
		top, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		if err := vm.Returns.Rollback(frame.SavedReturnDepth); err != nil {
			return err
		}
		if err := vm.Env.Rollback(frame.SavedEnvDepth); err != nil {
			return err
		}
		if err := vm.Stack.Rollback(frame.SavedDataDepth); err != nil {
			return err
		}
		vm.Stack.Push(top)
		vm.pc = frame.ReturnPC
		return nil

	case value.PopJump:
		if _, err := vm.LongJumps.Pop(); err != nil {
			return err
		}
		vm.pc = vm.pc.Next()
		return nil

	default:
		vm.pc = vm.pc.Next()
		return nil
	}
}
