package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"sjsage522/pricewatcher/logger"
	pwerrors "sjsage522/pricewatcher/pkg/errors"
)

const defaultPageLoadTimeout = 30 * time.Second

// Options configures a Chrome session
type Options struct {
	Headless bool
	ExecPath string
	// RemoteURL attaches to a running browser (ws:// or http:// devtools
	// endpoint) instead of launching one.
	RemoteURL       string
	PageLoadTimeout time.Duration
	// TextRemove lists selectors stripped from an element before its text is read
	TextRemove []string
}

// ChromeSession implements Session on top of chromedp
type ChromeSession struct {
	opts Options
	log  *logger.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// ChromeOpener returns an Opener launching ChromeSessions with opts
func ChromeOpener(opts Options) Opener {
	return func(ctx context.Context) (Session, error) {
		return NewChromeSession(ctx, opts)
	}
}

// NewChromeSession starts a browser and opens a tab in it
func NewChromeSession(ctx context.Context, opts Options) (*ChromeSession, error) {
	log := logger.ForBrowser()
	if opts.PageLoadTimeout <= 0 {
		opts.PageLoadTimeout = defaultPageLoadTimeout
	}

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if opts.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, opts.RemoteURL)
		log.Info().Str("remote_url", opts.RemoteURL).Msg("Attaching to remote browser")
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	}

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser; it must use the tab context itself so
	// the browser lives as long as the session.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, pwerrors.NewBrowser("failed to start browser", err)
	}

	log.Info().Bool("headless", opts.Headless).Msg("Browser started")

	return &ChromeSession{
		opts:        opts,
		log:         log,
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
	}, nil
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	options := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("log-level", "1"),
	)
	if opts.ExecPath != "" {
		options = append(options, chromedp.ExecPath(opts.ExecPath))
	}
	return options
}

// run executes actions on the tab, bounded by timeout and by ctx
func (s *ChromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate implements Page
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, s.opts.PageLoadTimeout, chromedp.Navigate(url))
}

// WaitForElement implements Page
func (s *ChromeSession) WaitForElement(ctx context.Context, selector string, timeout time.Duration) (WaitOutcome, error) {
	err := s.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
	switch {
	case err == nil:
		return ElementPresent, nil
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		return WaitTimedOut, nil
	default:
		return WaitTimedOut, err
	}
}

// ReadText implements Page
func (s *ChromeSession) ReadText(ctx context.Context, selector string) (string, error) {
	var nodes []*cdp.Node
	if err := s.run(ctx, s.opts.PageLoadTimeout,
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	); err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", ErrElementNotFound
	}

	var html string
	if err := s.run(ctx, s.opts.PageLoadTimeout,
		chromedp.OuterHTML(selector, &html, chromedp.ByQuery),
	); err != nil {
		return "", err
	}

	return TextFromHTML(html, s.opts.TextRemove)
}

// EvaluateScript implements Page
func (s *ChromeSession) EvaluateScript(ctx context.Context, script string) ([]byte, error) {
	var raw []byte
	if err := s.run(ctx, s.opts.PageLoadTimeout, chromedp.Evaluate(script, &raw)); err != nil {
		return nil, err
	}
	return raw, nil
}

// Close implements Session
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancel()
		s.allocCancel()
		if s.closeErr != nil {
			s.log.Warn().Err(s.closeErr).Msg("Browser did not close cleanly")
		}
	})
	return s.closeErr
}
