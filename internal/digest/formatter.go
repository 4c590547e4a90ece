package digest

import (
	"strings"

	"sjsage522/pricewatcher/internal/crawler"
)

// Formatter renders a chunk of products as one chat message
type Formatter struct {
	Header string
}

// NewFormatter creates a formatter whose messages start with header
func NewFormatter(header string) *Formatter {
	return &Formatter{Header: header}
}

// Format returns the header line followed by one stanza per product
func (f *Formatter) Format(chunk []crawler.ProductRecord) string {
	var b strings.Builder
	b.WriteString(f.Header)
	b.WriteString("\n")

	for _, p := range chunk {
		b.WriteString("\nItem: " + p.Name)
		b.WriteString("\nUrl: " + p.URL)
		b.WriteString("\nOriginal Price: " + crawler.FormatPrice(p.MaxPrice))
		b.WriteString("\nCurrent Price: " + crawler.FormatPrice(p.CurrentPrice))
		b.WriteString("\nLowest Price: " + crawler.FormatPrice(p.MinPrice))
		b.WriteString("\nDiscount Rate: " + crawler.FormatPercent(p.DiscountRate))
		b.WriteString("\n")
	}

	return b.String()
}
