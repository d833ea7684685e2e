package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents one purchase parsed from pasted order-history text.
type Order struct {
	ID    string          // vendor format "NNN-NNNNNNN-NNNNNNN"
	Total decimal.Decimal // 2-decimal currency amount, never negative
	Date  time.Time       // zero = date unknown
	Items []string        // normalized item descriptions, may be empty
}

// HasDate reports whether the order date was successfully parsed.
func (o Order) HasDate() bool {
	return !o.Date.IsZero()
}
