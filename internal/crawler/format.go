package crawler

import (
	"fmt"
	"strconv"
)

// FormatPercent renders a rate as a percentage with two decimals: 0.1 -> "10.00%"
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatPrice renders a price with the shortest exact representation: 590 -> "590"
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
