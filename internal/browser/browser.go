package browser

import (
	"context"
	"errors"
	"time"
)

// ErrElementNotFound is returned by ReadText when no element matches the selector
var ErrElementNotFound = errors.New("element not found")

// WaitOutcome is the result of waiting for an element
type WaitOutcome int

const (
	// ElementPresent means the element appeared before the timeout
	ElementPresent WaitOutcome = iota
	// WaitTimedOut means the timeout elapsed first
	WaitTimedOut
)

func (o WaitOutcome) String() string {
	switch o {
	case ElementPresent:
		return "present"
	case WaitTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Page is a single browser tab
type Page interface {
	// Navigate loads url and blocks until the page has loaded
	Navigate(ctx context.Context, url string) error

	// WaitForElement blocks until selector matches an element or timeout elapses.
	// A timeout is reported as WaitTimedOut, not as an error.
	WaitForElement(ctx context.Context, selector string, timeout time.Duration) (WaitOutcome, error)

	// ReadText returns the visible text of the first element matching selector
	ReadText(ctx context.Context, selector string) (string, error)

	// EvaluateScript runs script in the page and returns its result as JSON
	EvaluateScript(ctx context.Context, script string) ([]byte, error)
}

// Session is a browser owned for the whole run
type Session interface {
	Page

	// Close releases the browser. It is safe to call more than once.
	Close() error
}

// Opener starts a new Session
type Opener func(ctx context.Context) (Session, error)
