package errors

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	cause := stderrors.New("net::ERR_NAME_NOT_RESOLVED")
	err := NewNavigation("https://example.com/p/1", cause)

	assert.Equal(t, "[navigation] https://example.com/p/1: failed to load page - net::ERR_NAME_NOT_RESOLVED", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	timeout := NewTimeout("https://example.com/p/2", "#priceChart", 10*time.Second, nil)
	assert.Equal(t, "[timeout] https://example.com/p/2: #priceChart not present after 10s", timeout.Error())
	assert.Nil(t, timeout.Unwrap())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, NewConfiguration("SLACK_TOKEN", "not set").IsFatal())
	assert.True(t, NewBrowser("launch failed", nil).IsFatal())

	assert.False(t, NewParsing("u", "bad dataset", nil).IsFatal())
	assert.False(t, NewValidation("u", "zero max price", nil).IsFatal())
	assert.False(t, NewPublisher("#deals", "send failed", nil).IsFatal())
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = NewPublisher("#deals", "send failed", stderrors.New("channel_not_found"))

	var target *Error
	if assert.True(t, stderrors.As(wrapped, &target)) {
		assert.Equal(t, ErrorTypePublisher, target.Type)
		assert.Equal(t, "#deals", target.Target)
		assert.False(t, target.Time.IsZero())
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal("https://example.com/p/3", "index out of range")
	assert.Equal(t, "[internal] https://example.com/p/3: unexpected failure: index out of range", err.Error())
	assert.False(t, err.IsFatal())

	cause := stderrors.New("boom")
	assert.ErrorIs(t, NewInternal("u", cause), cause)
}
