// Package value implements the engine's tagged Value and Instruction sum
// types. Both are generic over a host Extension type E, matching the
// specification's Value::Extension(T) variant with a type parameter rather
// than an any box, so a host that carries no extension state can simply
// instantiate everything at E = struct{}.
package value

import (
	"fmt"

	"github.com/jcorbin/exst/internal/addr"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	Empty Kind = iota
	Int
	Str
	CodeAddress
	DataAddress
	EnvAddress
	Extension
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Int:
		return "Int"
	case Str:
		return "Str"
	case CodeAddress:
		return "CodeAddress"
	case DataAddress:
		return "DataAddress"
	case EnvAddress:
		return "EnvAddress"
	case Extension:
		return "Extension"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the tagged union carried on the data stack and in data storage.
// Values are immutable once constructed: replacing a cell's contents means
// storing a whole new Value, never mutating one in place. The zero Value is
// Empty, the required default for uninitialized cells.
type Value[E any] struct {
	kind Kind
	i    int32
	s    string
	code addr.Code
	data addr.Data
	env  addr.EnvRel
	ext  E
}

// Kind reports which variant v holds.
func (v Value[E]) Kind() Kind { return v.kind }

// NewInt constructs an Int value.
func NewInt[E any](i int32) Value[E] { return Value[E]{kind: Int, i: i} }

// NewStr constructs a Str value.
func NewStr[E any](s string) Value[E] { return Value[E]{kind: Str, s: s} }

// NewCodeAddress constructs a CodeAddress value.
func NewCodeAddress[E any](a addr.Code) Value[E] { return Value[E]{kind: CodeAddress, code: a} }

// NewDataAddress constructs a DataAddress value.
func NewDataAddress[E any](a addr.Data) Value[E] { return Value[E]{kind: DataAddress, data: a} }

// NewEnvAddress constructs an EnvAddress value.
func NewEnvAddress[E any](rel addr.EnvRel) Value[E] { return Value[E]{kind: EnvAddress, env: rel} }

// NewExtension constructs an Extension value wrapping a host-defined payload.
func NewExtension[E any](ext E) Value[E] { return Value[E]{kind: Extension, ext: ext} }

// Int returns the held int32 and true if v is an Int.
func (v Value[E]) Int() (int32, bool) {
	if v.kind != Int {
		return 0, false
	}
	return v.i, true
}

// Str returns the held string and true if v is a Str.
func (v Value[E]) Str() (string, bool) {
	if v.kind != Str {
		return "", false
	}
	return v.s, true
}

// CodeAddress returns the held code address and true if v is a CodeAddress.
func (v Value[E]) CodeAddress() (addr.Code, bool) {
	if v.kind != CodeAddress {
		return addr.Root, false
	}
	return v.code, true
}

// DataAddress returns the held data address and true if v is a DataAddress.
func (v Value[E]) DataAddress() (addr.Data, bool) {
	if v.kind != DataAddress {
		return addr.DataRoot, false
	}
	return v.data, true
}

// EnvAddress returns the held relative environment offset and true if v is
// an EnvAddress.
func (v Value[E]) EnvAddress() (addr.EnvRel, bool) {
	if v.kind != EnvAddress {
		return 0, false
	}
	return v.env, true
}

// Extension returns the held extension payload and true if v is an
// Extension.
func (v Value[E]) Extension() (E, bool) {
	if v.kind != Extension {
		var zero E
		return zero, false
	}
	return v.ext, true
}

// IsEmpty reports whether v is the zero/default Empty value.
func (v Value[E]) IsEmpty() bool { return v.kind == Empty }

// IsZero reports whether v represents the integer 0, exactly; this is the
// only sense in which Branch inspects a value, per the spec: a Str("0") is
// not "zero" and does not inhibit a branch.
func (v Value[E]) IsZero() bool { return v.kind == Int && v.i == 0 }

func (v Value[E]) String() string {
	switch v.kind {
	case Empty:
		return "<empty>"
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Str:
		return fmt.Sprintf("%q", v.s)
	case CodeAddress:
		return fmt.Sprintf("code@%v", v.code)
	case DataAddress:
		return fmt.Sprintf("data@%v", v.data)
	case EnvAddress:
		return fmt.Sprintf("env+%d", v.env)
	case Extension:
		return fmt.Sprintf("ext(%v)", v.ext)
	default:
		return "<invalid>"
	}
}
