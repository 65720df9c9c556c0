// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's goroutines and returns without blocking; they live
// until ctx is cancelled or Stop is called. Stop waits for them to finish.
//
// Example implementation:
//
//	type MyWorker struct{ wg sync.WaitGroup }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    w.wg.Add(1)
//	    go func() { defer w.wg.Done(); <-ctx.Done() }()
//	}
//
//	func (w *MyWorker) Stop() { w.wg.Wait() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
