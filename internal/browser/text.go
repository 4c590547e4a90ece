package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextFromHTML returns the whitespace-collapsed text of an HTML fragment after
// removing every element matched by the remove selectors.
func TextFromHTML(fragment string, remove []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse element html: %w", err)
	}

	sel := doc.Find("body")
	for _, selector := range remove {
		sel.Find(selector).Remove()
	}

	return strings.Join(strings.Fields(sel.Text()), " "), nil
}
