// Package addr implements the VM's tagged address kinds: small wrappers
// around an index. Code and Data each have a ROOT sentinel meaning "not a
// real address"; the stack-depth marks have no sentinel, and EnvRel is a
// signed offset.
package addr

import "math"

// rootIndex is the sentinel index value used by every address kind below.
const rootIndex = math.MaxUint32

// Code indexes the code buffer.
type Code uint32

// Root is the default Code value, meaning "no code to run".
const Root Code = rootIndex

// IsRoot reports whether a is the Root sentinel.
func (a Code) IsRoot() bool { return a == Root }

// Next returns the following code address; Root.Next() is Root.
func (a Code) Next() Code {
	if a.IsRoot() {
		return Root
	}
	return a + 1
}

// Data indexes the data buffer.
type Data uint32

// DataRoot is the sentinel Data address.
const DataRoot Data = rootIndex

// IsRoot reports whether a is the sentinel.
func (a Data) IsRoot() bool { return a == DataRoot }

// ReturnMark is an opaque mark identifying a depth of the return stack.
type ReturnMark uint32

// EnvMark is an opaque mark identifying a depth of the environment stack.
type EnvMark uint32

// DataMark is an opaque mark identifying a depth of the data stack.
type DataMark uint32

// EnvRel is an offset from the current environment stack frame's base.
type EnvRel int32
