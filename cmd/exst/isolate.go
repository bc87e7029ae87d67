package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/exst/internal/panicerr"
)

// runIsolated runs f in its own goroutine, recovering any panic or
// runtime.Goexit into a returned error (internal/panicerr.Recover, grounded
// on the teacher's isolate()/panicerr types, now a single shared package
// instead of being duplicated between main and internal/panicerr), and
// races it against ctx so a hung primitive can't wedge the debug loop.
// Grounded on scripts/gen_vm_expects.go's errgroup.WithContext-paired-with-
// context pattern, the pack's own precedent for this shape; like that
// script, a timed-out call leaves its goroutine running in the background
// rather than forcibly killing it -- Go has no such mechanism.
func runIsolated(ctx context.Context, name string, f func() error) error {
	g, ctx := errgroup.WithContext(ctx)
	done := make(chan error, 1)
	g.Go(func() error {
		done <- panicerr.Recover(name, f)
		return nil
	})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
