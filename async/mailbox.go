package async

// A Mailbox stores AsyncErrors and their associated callbacks
// and invokes them once the AsyncError is completed.
//
// Goroutines give no way to return a response, but the goroutine that spawned
// them usually needs to know whether the work completed successfully and act
// on the result. Each spawned goroutine gets an AsyncError from the Mailbox
// and completes it when done; the owning goroutine either polls with
// ProcessMessages or blocks with Wait.
//
//	mailbox := NewMailbox()
//	failed := 0
//	for _, shard := range shards {
//	  go func(rsp *AsyncError, s Shard) {
//	    rsp.SetValue(search(s))
//	  }(mailbox.NewAsyncError(func(err error) {
//	    if err != nil {
//	      failed++
//	    }
//	  }), shard)
//	}
//	mailbox.Wait()
//
// A Mailbox is not a concurrent structure and should only
// ever be accessed from a single go routine.  This ensures that the callbacks
// are always executed within the same context and only one at a time.
type Mailbox struct {
	msgs   []message
	notify chan struct{}
}

// The function type of the callback invoked when an AsyncError is Completed
type AsyncErrorResponseHandler func(error)

// async message is a struct composed of an AsyncError
// and its associated callback
type message struct {
	Err      *AsyncError
	callback AsyncErrorResponseHandler
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		msgs:   make([]message, 0),
		notify: make(chan struct{}, 1),
	}
}

// Count is the number of AsyncErrors whose callbacks have not run yet.
func (bx *Mailbox) Count() int {
	return len(bx.msgs)
}

// Completions receives a value whenever at least one AsyncError completed
// since the last receive. Wakeups coalesce, so follow every receive with
// ProcessMessages.
func (bx *Mailbox) Completions() <-chan struct{} {
	return bx.notify
}

// Creates a NewAsyncError and associates the supplied callback with it.
// Once the AsyncError has been completed, SetValue called, the callback
// will be invoked on the next execution of ProcessMessages
func (bx *Mailbox) NewAsyncError(cb AsyncErrorResponseHandler) *AsyncError {
	msg := message{
		Err:      newAsyncError(bx.notify),
		callback: cb,
	}
	bx.msgs = append(bx.msgs, msg)
	return msg.Err
}

// Processes the mailbox.  For all messages with completed AsyncErrors
// the callback function is invoked and the message removed from the mailbox
func (bx *Mailbox) ProcessMessages() {
	var unCompletedMsgs []message
	for _, msg := range bx.msgs {
		ok, err := msg.Err.TryGetValue()

		// if a AsyncErr's value has been set, invoke the callback
		if ok {
			msg.callback(err)
		} else {
			unCompletedMsgs = append(unCompletedMsgs, msg)
		}
	}

	// reset inProgress messages to unCompletedMsgs only
	bx.msgs = unCompletedMsgs
}

// Wait blocks until every outstanding AsyncError has completed and its
// callback has run.
func (bx *Mailbox) Wait() {
	bx.ProcessMessages()
	for bx.Count() > 0 {
		<-bx.notify
		bx.ProcessMessages()
	}
}
