package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
		ok   bool
	}{
		{"plain with separators", "Rs 2,500,000", 2_500_000, true},
		{"million suffix", "Rs. 38M", 38_000_000, true},
		{"million suffix lowercase", "rs 2.5m", 2_500_000, true},
		{"lakh suffix", "Rs 25 Lakhs", 2_500_000, true},
		{"lakh singular", "18 lakh", 1_800_000, true},
		{"crore suffix", "1.2 crore", 12_000_000, true},
		{"bare number", "450000", 450_000, true},
		{"decimal rounding", "Rs 100.6", 101, true},
		{"negotiable text only", "Negotiable", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"perches", "10 perches", 10, true},
		{"perch singular", "1 perch", 1, true},
		{"p abbreviation", "12.5P", 12.5, true},
		{"acres", "0.5 acres", 80, true},
		{"ac abbreviation", "2 ac", 320, true},
		{"roods", "2 roods", 80, true},
		{"perch wins over acre", "10 perches from 1 acre block", 10, true},
		{"no unit", "1200", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Size(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPricePerPerch(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		size     float64
		explicit bool
		want     int64
		ok       bool
	}{
		{"aggregate price branch", 8_000_000, 20, false, 400_000, true},
		{"already unit price branch", 300_000, 10, false, 300_000, true},
		{"zero size", 300_000, 0, false, 0, false},
		{"negative size", 300_000, -5, false, 0, false},
		{"missing total", 0, 10, false, 0, false},
		{"explicit per unit", 8_000_000, 20, true, 8_000_000, true},
		{"large total large size divides", 20_000_000, 100, false, 200_000, true},
		{"ambiguous band passes through", 750_000, 8, false, 750_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PricePerPerch(tt.total, tt.size, tt.explicit)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
