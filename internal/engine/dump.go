package engine

import (
	"fmt"
	"io"
)

// Dump renders a human-readable snapshot of the VM: mode/state/pc, the data
// stack, the return stack (each frame resolved back to a word name via the
// dictionary's GuessName), and the current script-call chain. Grounded on
// the teacher's vmDumper (io.go), which renders an equivalent snapshot over
// the single flat FIRST VM; kept engine-adjacent (rather than pushed out to
// cmd/exst) since debug tooling needs direct access to unexported stack
// contents a public library surface otherwise wouldn't expose.
func (vm *VM[E]) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "mode=%v state=%v pc=%v\n", vm.mode, vm.state, vm.pc); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "data stack (%d):\n", vm.Stack.Here()); err != nil {
		return err
	}
	for i := uint(0); i < vm.Stack.Here(); i++ {
		v, err := vm.Stack.Get(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  [%d] %v\n", i, v); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "return stack (%d):\n", vm.Returns.Here()); err != nil {
		return err
	}
	for i := uint(0); i < vm.Returns.Here(); i++ {
		fr, err := vm.Returns.Get(i)
		if err != nil {
			return err
		}
		name, ok := vm.Words.GuessName(fr.ReturnPC)
		if !ok {
			name = "?"
		}
		if _, err := fmt.Fprintf(w, "  [%d] return=%v (%s) envBase=%v\n", i, fr.ReturnPC, name, fr.SavedEnvBase); err != nil {
			return err
		}
	}

	if chain := vm.Debug.ChainString(); chain != "" {
		if _, err := fmt.Fprintf(w, "script chain: %s\n", chain); err != nil {
			return err
		}
	}
	return nil
}
