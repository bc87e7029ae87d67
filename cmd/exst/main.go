// Command exst runs exst stack-language scripts, grounded on the teacher's
// flag-driven main.go (root VM construction, --trace/--dump wiring) and on
// stackedboxes/romualdo's cmd/romualdo tree for the cobra command shape.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
