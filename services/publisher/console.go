package publisher

import (
	"context"
	"fmt"
	"io"
)

// ConsolePublisher writes messages to w instead of sending them anywhere
type ConsolePublisher struct {
	w io.Writer
}

// NewConsolePublisher creates a new console publisher
func NewConsolePublisher(w io.Writer) *ConsolePublisher {
	return &ConsolePublisher{w: w}
}

// Publish writes message followed by a separator line
func (p *ConsolePublisher) Publish(ctx context.Context, message string) error {
	_, err := fmt.Fprintf(p.w, "%s\n----\n", message)
	return err
}

// Target returns "console"
func (p *ConsolePublisher) Target() string {
	return "console"
}

// Close is a no-op
func (p *ConsolePublisher) Close() error {
	return nil
}
