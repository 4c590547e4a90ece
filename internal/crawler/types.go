package crawler

import "time"

// ProductRecord is the price summary of one product page. It is only built
// through NewProductRecord, which guarantees a non-empty price series with a
// positive maximum.
type ProductRecord struct {
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Prices       []float64 `json:"prices"`
	CurrentPrice float64   `json:"current_price"`
	MaxPrice     float64   `json:"original_price"`
	MinPrice     float64   `json:"min_price"`
	DiscountRate float64   `json:"discount_rate"`
}

// Selectors contains CSS selectors for the elements read from a product page
type Selectors struct {
	Chart string
	Title string
}

// ExtractorConfig contains configuration for an Extractor
type ExtractorConfig struct {
	Selectors Selectors
	// DatasetScript evaluates to the chart's [{x, y}, ...] points
	DatasetScript string
	WaitTimeout   time.Duration
}
