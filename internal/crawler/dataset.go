package crawler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type chartPoint struct {
	X json.RawMessage `json:"x"`
	Y json.RawMessage `json:"y"`
}

// ParsePriceSeries reads the JSON array of {x, y} chart points and returns
// the y values in order. y may be a number or a numeric string.
func ParsePriceSeries(raw []byte) ([]float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrNoPrices
	}

	var points []chartPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if len(points) == 0 {
		return nil, ErrNoPrices
	}

	prices := make([]float64, 0, len(points))
	for i, point := range points {
		price, err := parseY(point.Y)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformedDataset, i, err)
		}
		prices = append(prices, price)
	}

	return prices, nil
}

func parseY(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("missing y")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
