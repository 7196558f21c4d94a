package async

// AsyncError is an async value that will eventually return an error
// It is similar to a Promise/Future which returns an error
// The value is supplied by calling SetValue.
// Once the value is supplied AsyncError is considered completed
// The value can be retrieved once AsyncError is completed via TryGetValue
type AsyncError struct {
	errCh     chan error
	notify    chan<- struct{}
	val       error
	completed bool
}

func newAsyncError(notify chan<- struct{}) *AsyncError {
	return &AsyncError{
		errCh:  make(chan error, 1),
		notify: notify,
	}
}

// Sets the value for the AsyncError.  Marks AsyncError as Completed or Fulfilled.
// If the AsyncError belongs to a Mailbox, the Mailbox's completion channel is
// signaled after the value is stored.
// This method should only ever be called once per AsyncError instance.
// Calling this method more than once will panic
func (e *AsyncError) SetValue(err error) {
	e.errCh <- err
	close(e.errCh)
	if e.notify != nil {
		select {
		case e.notify <- struct{}{}:
		default:
			// a wakeup is already pending; ProcessMessages will see this value too
		}
	}
}

// Returns the Status of this AsyncError:
// Completed(true) or Pending(false)
// and the value of the AsyncError if it is Completed.
//
// The returned bool is true if Completed, false if Pending
// If Completed the returned error is the Value of this AsyncError
// If AsyncError is not completed the returned error is nil.
func (e *AsyncError) TryGetValue() (bool, error) {
	if e.completed {
		return true, e.val
	}
	select {
	case err := <-e.errCh:
		e.val = err
		e.completed = true
		return true, err
	default:
		return false, nil
	}
}
