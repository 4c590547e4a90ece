package crawler

import (
	"context"
	"time"

	"sjsage522/pricewatcher/internal/browser"
)

// MockPage implements browser.Page with canned responses for testing
type MockPage struct {
	outcome   browser.WaitOutcome
	waitErr   error
	texts     map[string]string
	textErr   error
	dataset   string
	scriptErr error

	waitedFor []string
	waits     []time.Duration
}

var _ browser.Page = (*MockPage)(nil)

func NewMockPage(title, dataset string) *MockPage {
	return &MockPage{
		outcome: browser.ElementPresent,
		texts:   map[string]string{"h1.title": title},
		dataset: dataset,
	}
}

func (m *MockPage) Navigate(ctx context.Context, url string) error {
	return nil
}

func (m *MockPage) WaitForElement(ctx context.Context, selector string, timeout time.Duration) (browser.WaitOutcome, error) {
	m.waitedFor = append(m.waitedFor, selector)
	m.waits = append(m.waits, timeout)
	return m.outcome, m.waitErr
}

func (m *MockPage) ReadText(ctx context.Context, selector string) (string, error) {
	if m.textErr != nil {
		return "", m.textErr
	}
	text, ok := m.texts[selector]
	if !ok {
		return "", browser.ErrElementNotFound
	}
	return text, nil
}

func (m *MockPage) EvaluateScript(ctx context.Context, script string) ([]byte, error) {
	if m.scriptErr != nil {
		return nil, m.scriptErr
	}
	return []byte(m.dataset), nil
}
