package publisher

import "context"

// Publisher represents a destination for digest messages
type Publisher interface {
	// Publish delivers one message. A single attempt is made.
	Publish(ctx context.Context, message string) error

	// Target names the destination for logging, e.g. a channel or stream
	Target() string

	// Close closes the publisher connection
	Close() error
}
