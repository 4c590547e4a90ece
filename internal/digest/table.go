package digest

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sjsage522/pricewatcher/internal/crawler"
)

// RenderTable writes a console summary of products to w
func RenderTable(w io.Writer, products []crawler.ProductRecord) string {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Item", "Original", "Current", "Lowest", "Discount"})

	for i, p := range products {
		t.AppendRow(table.Row{
			i + 1,
			p.Name,
			crawler.FormatPrice(p.MaxPrice),
			crawler.FormatPrice(p.CurrentPrice),
			crawler.FormatPrice(p.MinPrice),
			crawler.FormatPercent(p.DiscountRate),
		})
	}

	t.AppendFooter(table.Row{"", "Total", len(products)})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	return t.Render()
}
