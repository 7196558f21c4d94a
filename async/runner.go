// Async provides tools for asynchronous callback processing using Goroutines
package async

import (
	"fmt"
	"runtime/debug"
)

// A Runner spawns goroutines to run functions and associates callbacks with
// them. It builds on Mailbox so the caller never handles AsyncErrors itself.
//
// The lineup coordinator uses a Runner per search: one function per shard,
// one callback per shard that records success or failure, and a single
// owning goroutine that drains results until NumRunning reaches zero.
//
//	runner := NewRunner()
//	for _, s := range shards {
//	  s := s
//	  runner.RunAsync(func() error { return search(s) }, func(err error) {
//	    if err != nil {
//	      failed = append(failed, s)
//	    }
//	  })
//	}
//	runner.Wait()
type Runner struct {
	bx *Mailbox
}

func NewRunner() Runner {
	return Runner{
		bx: NewMailbox(),
	}
}

// PanicError is delivered to a RunAsync callback when the function panicked.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

func (r *Runner) NumRunning() int {
	return r.bx.Count()
}

// RunAsync creates a go routine to run the specified function f.
// The callback, cb, is invoked once f is completed by calling ProcessMessages
// or Wait. A panic in f is recovered and handed to cb as a *PanicError, so a
// crashing function still counts as completed.
func (r *Runner) RunAsync(f func() error, cb AsyncErrorResponseHandler) {
	asyncErr := r.bx.NewAsyncError(cb)
	go func(rsp *AsyncError) {
		var err error
		defer func() {
			if v := recover(); v != nil {
				err = &PanicError{Value: v, Stack: debug.Stack()}
			}
			rsp.SetValue(err)
		}()
		err = f()
	}(asyncErr)
}

// Completions signals that at least one function finished. See
// Mailbox.Completions.
func (r *Runner) Completions() <-chan struct{} {
	return r.bx.Completions()
}

// Invokes all callbacks of completed asyncfunctions.
// Callbacks are ran synchronously and by the calling go routine
func (r *Runner) ProcessMessages() {
	r.bx.ProcessMessages()
}

// Wait blocks until all functions have completed and their callbacks ran.
func (r *Runner) Wait() {
	r.bx.Wait()
}
