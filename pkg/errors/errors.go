package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNavigation represents page load failures
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeTimeout represents an element that never appeared
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeParsing represents unreadable page data
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeValidation represents data that breaks a product invariant
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeBrowser represents a browser session that could not be started
	ErrorTypeBrowser ErrorType = "browser"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeInternal represents a panic recovered while handling one target
	ErrorTypeInternal ErrorType = "internal"
)

// Error is a failure tied to one target: a product URL, a channel or a config key.
type Error struct {
	Type    ErrorType
	Target  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Target, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error must stop the run before any product is processed.
// Everything else is scoped to a single URL or message.
func (e *Error) IsFatal() bool {
	switch e.Type {
	case ErrorTypeConfiguration, ErrorTypeBrowser:
		return true
	default:
		return false
	}
}

// New creates a new Error
func New(errType ErrorType, target, message string, err error) *Error {
	return &Error{
		Type:    errType,
		Target:  target,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNavigation creates a new navigation error
func NewNavigation(url string, err error) *Error {
	return New(ErrorTypeNavigation, url, "failed to load page", err)
}

// NewTimeout creates a new timeout error
func NewTimeout(url, selector string, wait time.Duration, err error) *Error {
	message := fmt.Sprintf("%s not present after %v", selector, wait)
	return New(ErrorTypeTimeout, url, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(url, message string, err error) *Error {
	return New(ErrorTypeParsing, url, message, err)
}

// NewValidation creates a new validation error
func NewValidation(url, message string, err error) *Error {
	return New(ErrorTypeValidation, url, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(key, message string) *Error {
	return New(ErrorTypeConfiguration, key, message, nil)
}

// NewBrowser creates a new browser error
func NewBrowser(message string, err error) *Error {
	return New(ErrorTypeBrowser, "browser", message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(target, message string, err error) *Error {
	return New(ErrorTypePublisher, target, message, err)
}

// NewInternal wraps a value recovered from a panic
func NewInternal(target string, recovered interface{}) *Error {
	if err, ok := recovered.(error); ok {
		return New(ErrorTypeInternal, target, "unexpected failure", err)
	}
	return New(ErrorTypeInternal, target, fmt.Sprintf("unexpected failure: %v", recovered), nil)
}
