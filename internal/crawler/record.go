package crawler

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrNoPrices means the page had no price points
	ErrNoPrices = errors.New("no price points")
	// ErrMalformedDataset means the price points could not be read as positive numbers
	ErrMalformedDataset = errors.New("malformed price dataset")
	// ErrZeroMaxPrice means the highest price is not positive, so no discount rate exists
	ErrZeroMaxPrice = errors.New("max price is not positive")
)

// NewProductRecord computes the price statistics of prices, which must be in
// chronological order.
func NewProductRecord(name, url string, prices []float64) (ProductRecord, error) {
	if len(prices) == 0 {
		return ProductRecord{}, ErrNoPrices
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return ProductRecord{}, fmt.Errorf("%w: point %d is %v", ErrMalformedDataset, i, p)
		}
	}

	maxPrice := slices.Max(prices)
	if maxPrice <= 0 {
		return ProductRecord{}, ErrZeroMaxPrice
	}
	for i, p := range prices {
		if p <= 0 {
			return ProductRecord{}, fmt.Errorf("%w: point %d is %v", ErrMalformedDataset, i, p)
		}
	}

	current := prices[len(prices)-1]

	return ProductRecord{
		Name:         name,
		URL:          url,
		Prices:       slices.Clone(prices),
		CurrentPrice: current,
		MaxPrice:     maxPrice,
		MinPrice:     slices.Min(prices),
		DiscountRate: (maxPrice - current) / maxPrice,
	}, nil
}
