package value

import (
	"fmt"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/vmerr"
)

// InstrKind tags which variant an Instruction holds.
type InstrKind int

const (
	Nop InstrKind = iota
	Push
	Call
	CallPrimitive
	Return
	LocalRef
	Trap
	DebugLabel
	Branch
	Jump
	Exec
	SetJump
	LongJump
	PopJump
)

func (k InstrKind) String() string {
	names := [...]string{
		"Nop", "Push", "Call", "CallPrimitive", "Return", "LocalRef", "Trap",
		"DebugLabel", "Branch", "Jump", "Exec", "SetJump", "LongJump", "PopJump",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("InstrKind(%d)", int(k))
}

// Primitive is a host callback invoked by a CallPrimitive instruction. Host
// is left as an opaque any (the concrete *engine.VM[E]); engine unwraps it
// to avoid an import cycle between value and engine.
type Primitive[E any] func(host any) error

// Instruction is the tagged union of every primitive executable step. The
// zero Instruction is Nop.
type Instruction[E any] struct {
	Kind  InstrKind
	Value Value[E]          // Push
	Code  addr.Code         // Call, Branch, Jump, SetJump
	Fn    Primitive[E]      // CallPrimitive
	Local addr.EnvRel       // LocalRef
	Trap  vmerr.TrapReason  // Trap
	Label string            // DebugLabel
}

// MakePush constructs a Push instruction.
func MakePush[E any](v Value[E]) Instruction[E] { return Instruction[E]{Kind: Push, Value: v} }

// MakeCall constructs a Call instruction.
func MakeCall[E any](a addr.Code) Instruction[E] { return Instruction[E]{Kind: Call, Code: a} }

// MakeCallPrimitive constructs a CallPrimitive instruction.
func MakeCallPrimitive[E any](fn Primitive[E]) Instruction[E] {
	return Instruction[E]{Kind: CallPrimitive, Fn: fn}
}

// MakeReturn constructs a Return instruction.
func MakeReturn[E any]() Instruction[E] { return Instruction[E]{Kind: Return} }

// MakeLocalRef constructs a LocalRef instruction.
func MakeLocalRef[E any](rel addr.EnvRel) Instruction[E] {
	return Instruction[E]{Kind: LocalRef, Local: rel}
}

// MakeNop constructs a Nop instruction.
func MakeNop[E any]() Instruction[E] { return Instruction[E]{Kind: Nop} }

// MakeTrap constructs a Trap instruction.
func MakeTrap[E any](reason vmerr.TrapReason) Instruction[E] {
	return Instruction[E]{Kind: Trap, Trap: reason}
}

// MakeDebugLabel constructs a DebugLabel instruction.
func MakeDebugLabel[E any](label string) Instruction[E] {
	return Instruction[E]{Kind: DebugLabel, Label: label}
}

// WordTerminator is the DebugLabel value appended after every word body's
// trailing Return.
const WordTerminator = "<word-terminator>"

// MakeBranch constructs a Branch instruction.
func MakeBranch[E any](a addr.Code) Instruction[E] { return Instruction[E]{Kind: Branch, Code: a} }

// MakeJump constructs a Jump instruction.
func MakeJump[E any](a addr.Code) Instruction[E] { return Instruction[E]{Kind: Jump, Code: a} }

// MakeExec constructs an Exec instruction.
func MakeExec[E any]() Instruction[E] { return Instruction[E]{Kind: Exec} }

// MakeSetJump constructs a SetJump instruction.
func MakeSetJump[E any](a addr.Code) Instruction[E] { return Instruction[E]{Kind: SetJump, Code: a} }

// MakeLongJump constructs a LongJump instruction.
func MakeLongJump[E any]() Instruction[E] { return Instruction[E]{Kind: LongJump} }

// MakePopJump constructs a PopJump instruction.
func MakePopJump[E any]() Instruction[E] { return Instruction[E]{Kind: PopJump} }

func (ins Instruction[E]) String() string {
	switch ins.Kind {
	case Push:
		return fmt.Sprintf("push(%v)", ins.Value)
	case Call:
		return fmt.Sprintf("call(%v)", ins.Code)
	case CallPrimitive:
		return "callPrimitive"
	case LocalRef:
		return fmt.Sprintf("localRef(%d)", ins.Local)
	case Trap:
		return fmt.Sprintf("trap(%v)", ins.Trap)
	case DebugLabel:
		return fmt.Sprintf("debugLabel(%s)", ins.Label)
	case Branch:
		return fmt.Sprintf("branch(%v)", ins.Code)
	case Jump:
		return fmt.Sprintf("jump(%v)", ins.Code)
	case SetJump:
		return fmt.Sprintf("setJump(%v)", ins.Code)
	default:
		return ins.Kind.String()
	}
}
