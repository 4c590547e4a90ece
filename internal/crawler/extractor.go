package crawler

import (
	"context"
	"errors"
	"strings"

	"sjsage522/pricewatcher/internal/browser"
	"sjsage522/pricewatcher/logger"
	pwerrors "sjsage522/pricewatcher/pkg/errors"
)

var (
	// ErrChartTimeout means the price chart never appeared on the page
	ErrChartTimeout = errors.New("price chart did not appear")
	// ErrTitleMissing means the product title element was absent or empty
	ErrTitleMissing = errors.New("product title missing")
)

// Extractor reads a ProductRecord out of a loaded product page
type Extractor struct {
	config ExtractorConfig
	log    *logger.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(config ExtractorConfig) *Extractor {
	return &Extractor{
		config: config,
		log:    logger.ForExtractor(),
	}
}

// Extract reads the product on page, which must already show url. Every
// failure is returned as a *pwerrors.Error targeting the trimmed url.
func (e *Extractor) Extract(ctx context.Context, page browser.Page, url string) (ProductRecord, error) {
	url = strings.TrimSpace(url)

	outcome, err := page.WaitForElement(ctx, e.config.Selectors.Chart, e.config.WaitTimeout)
	if err != nil {
		return ProductRecord{}, pwerrors.NewNavigation(url, err)
	}
	if outcome == browser.WaitTimedOut {
		return ProductRecord{}, pwerrors.NewTimeout(url, e.config.Selectors.Chart, e.config.WaitTimeout, ErrChartTimeout)
	}

	name, err := page.ReadText(ctx, e.config.Selectors.Title)
	if errors.Is(err, browser.ErrElementNotFound) {
		return ProductRecord{}, pwerrors.NewParsing(url, "title element not found", ErrTitleMissing)
	}
	if err != nil {
		return ProductRecord{}, pwerrors.NewParsing(url, "failed to read title", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ProductRecord{}, pwerrors.NewParsing(url, "title element is empty", ErrTitleMissing)
	}
	e.log.Info().Str("url", url).Str("product", name).Msg("Product found")

	raw, err := page.EvaluateScript(ctx, e.config.DatasetScript)
	if err != nil {
		return ProductRecord{}, pwerrors.NewParsing(url, "failed to evaluate price dataset", err)
	}

	prices, err := ParsePriceSeries(raw)
	if err != nil {
		return ProductRecord{}, pwerrors.NewParsing(url, "failed to read price dataset", err)
	}

	record, err := NewProductRecord(name, url, prices)
	if err != nil {
		return ProductRecord{}, pwerrors.NewValidation(url, "invalid price series", err)
	}

	e.log.Info().
		Str("url", url).
		Float64("max", record.MaxPrice).
		Float64("min", record.MinPrice).
		Float64("current", record.CurrentPrice).
		Str("discount", FormatPercent(record.DiscountRate)).
		Msg("Price stats")

	return record, nil
}
