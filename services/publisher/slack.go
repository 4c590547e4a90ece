package publisher

import (
	"context"

	"github.com/slack-go/slack"

	"sjsage522/pricewatcher/logger"
	"sjsage522/pricewatcher/pkg/errors"
)

// SlackPublisher posts messages to a Slack channel with chat.postMessage
type SlackPublisher struct {
	client  *slack.Client
	channel string
	log     *logger.Logger
}

// NewSlackPublisher creates a new Slack publisher. Options are passed to the
// Slack client, e.g. slack.OptionAPIURL in tests.
func NewSlackPublisher(token, channel string, options ...slack.Option) *SlackPublisher {
	return &SlackPublisher{
		client:  slack.New(token, options...),
		channel: channel,
		log:     logger.ForPublisher().WithField("channel", channel),
	}
}

// Publish posts message as plain text
func (p *SlackPublisher) Publish(ctx context.Context, message string) error {
	_, ts, err := p.client.PostMessageContext(ctx, p.channel, slack.MsgOptionText(message, false))
	if err != nil {
		return errors.NewPublisher(p.channel, "failed to post slack message", err)
	}

	p.log.Info().Str("ts", ts).Msg("Message sent to channel")
	return nil
}

// Target returns the channel
func (p *SlackPublisher) Target() string {
	return p.channel
}

// Close is a no-op; the Slack client holds no connection
func (p *SlackPublisher) Close() error {
	return nil
}
