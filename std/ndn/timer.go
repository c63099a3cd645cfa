package ndn

import "time"

// Timer abstracts wall-clock time, delayed execution, and nonce
// generation so the core's periodic timer and Interest deadline logic
// (spec.md §4.5, §4.7) can be driven by a fake clock in tests.
type Timer interface {
	// Sleep blocks the calling goroutine for d.
	Sleep(d time.Duration)

	// Schedule arranges for f to run after d elapses, returning a
	// cancellation function. Calling it before f has fired prevents f
	// from ever running; a first call after f has fired does nothing and
	// returns nil; a repeated call may return an error.
	Schedule(d time.Duration, f func()) func() error

	// Now returns the current time.
	Now() time.Time

	// Nonce returns a fresh random Interest nonce.
	Nonce() []byte
}
