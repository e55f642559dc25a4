package hooks

import (
	"fmt"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Fault sources
const (
	SourceDispatch  = "dispatch"
	SourceBroadcast = "broadcast"
	SourceAsync     = "async"
)

// Fault describes one callback or listener that failed while its siblings
// kept running
type Fault struct {
	Source string
	// Phase is the phase or event name being delivered
	Phase string
	Mode  Mode
	// Index is the callback's position within its list
	Index int
	Err   error
}

// Error implements error
func (f Fault) Error() string {
	return fmt.Sprintf("%s %s[%d]: %v", f.Source, f.Phase, f.Index, f.Err)
}

// Unwrap returns the underlying error
func (f Fault) Unwrap() error {
	return f.Err
}

// FaultHandler receives isolated faults
type FaultHandler func(Fault)

// Invoke calls fn and turns a panic into an ErrCallbackFailed error
func Invoke(fn Callback, args ...any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	return fn(args...)
}

// Async wraps fn, registered under key, so that its body runs on its own
// goroutine. The returned callback returns as soon as the goroutine is
// started; a failure is reported to report, which may be nil.
func Async(key PhaseKey, fn Callback, report FaultHandler) Callback {
	return func(args ...any) error {
		go func() {
			if err := Invoke(fn, args...); err != nil && report != nil {
				report(Fault{
					Source: SourceAsync,
					Phase:  key.Phase,
					Mode:   key.Mode,
					Index:  -1,
					Err:    err,
				})
			}
		}()
		return nil
	}
}
