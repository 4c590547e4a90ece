package worker

import (
	"context"
	"errors"
	"time"

	"sjsage522/pricewatcher/internal/browser"
	"sjsage522/pricewatcher/internal/crawler"
	"sjsage522/pricewatcher/internal/digest"
	"sjsage522/pricewatcher/logger"
	pwerrors "sjsage522/pricewatcher/pkg/errors"
	"sjsage522/pricewatcher/services/publisher"
)

// Extractor reads one product from a page already showing url
type Extractor interface {
	Extract(ctx context.Context, page browser.Page, url string) (crawler.ProductRecord, error)
}

// Summary describes what a run did
type Summary struct {
	Attempted      int
	Extracted      int
	Failed         int
	Chunks         int
	MessagesSent   int
	MessagesFailed int
	Products       []crawler.ProductRecord
	Duration       time.Duration
}

// Worker drives one run: it owns the browser session, extracts every product,
// then batches, formats and publishes the results.
type Worker struct {
	opener     browser.Opener
	extractor  Extractor
	formatter  *digest.Formatter
	publishers []publisher.Publisher
	unitSize   int
	log        *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(
	opener browser.Opener,
	extractor Extractor,
	formatter *digest.Formatter,
	publishers []publisher.Publisher,
	unitSize int,
) *Worker {
	return &Worker{
		opener:     opener,
		extractor:  extractor,
		formatter:  formatter,
		publishers: publishers,
		unitSize:   unitSize,
		log:        logger.ForWorker(),
	}
}

// Run processes urls in order. Per-URL and per-message failures are logged and
// skipped; an error is returned only when the browser cannot be opened or ctx
// is cancelled before notification starts.
func (w *Worker) Run(ctx context.Context, urls []string) (Summary, error) {
	start := time.Now()
	summary := Summary{}

	products, err := w.collect(ctx, urls, &summary)
	summary.Products = products
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	w.notify(ctx, products, &summary)

	summary.Duration = time.Since(start)
	w.log.Info().
		Int("attempted", summary.Attempted).
		Int("extracted", summary.Extracted).
		Int("failed", summary.Failed).
		Int("messages_sent", summary.MessagesSent).
		Int("messages_failed", summary.MessagesFailed).
		Dur("elapsed", summary.Duration).
		Msg("Run finished")

	return summary, nil
}

// collect owns the browser session for the extraction pass and always closes it
func (w *Worker) collect(ctx context.Context, urls []string, summary *Summary) ([]crawler.ProductRecord, error) {
	session, err := w.opener(ctx)
	if err != nil {
		var pwErr *pwerrors.Error
		if !errors.As(err, &pwErr) {
			err = pwerrors.NewBrowser("failed to start browser", err)
		}
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			w.log.Warn().Err(err).Msg("Browser close reported an error")
		}
		w.log.Info().Msg("Browser closed")
	}()

	var products []crawler.ProductRecord
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			w.log.Warn().Int("remaining", len(urls)-summary.Attempted).Msg("Run interrupted")
			return products, err
		}

		summary.Attempted++
		record, err := w.process(ctx, session, url)
		if err != nil {
			summary.Failed++
			logger.LogError("worker", err, "Failed to extract product from %s", url)
			continue
		}
		summary.Extracted++
		products = append(products, record)
	}

	// A cancel during the last URL must still skip notification
	if err := ctx.Err(); err != nil {
		w.log.Warn().Msg("Run interrupted")
		return products, err
	}

	return products, nil
}

// process handles one URL. A panic is turned into an error scoped to that URL.
func (w *Worker) process(ctx context.Context, page browser.Page, url string) (record crawler.ProductRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pwerrors.NewInternal(url, r)
		}
	}()

	w.log.Info().Str("url", url).Msg("Processing product")
	if err := page.Navigate(ctx, url); err != nil {
		return crawler.ProductRecord{}, pwerrors.NewNavigation(url, err)
	}
	return w.extractor.Extract(ctx, page, url)
}

// notify sends one message per chunk to every publisher
func (w *Worker) notify(ctx context.Context, products []crawler.ProductRecord, summary *Summary) {
	chunks := digest.Batch(products, w.unitSize)
	summary.Chunks = len(chunks)

	for i, chunk := range chunks {
		message := w.formatter.Format(chunk)
		for _, pub := range w.publishers {
			if err := pub.Publish(ctx, message); err != nil {
				summary.MessagesFailed++
				logger.LogError("worker", err, "Failed to send chunk %d/%d to %s", i+1, len(chunks), pub.Target())
				continue
			}
			summary.MessagesSent++
		}
	}
}
