package model

import "github.com/shopspring/decimal"

// Milliunits per currency unit: 1000 = $1.00.
const MilliunitsPerUnit = 1000

// FromMilliunits converts a milliunit amount to a decimal currency amount.
func FromMilliunits(m int64) decimal.Decimal {
	return decimal.New(m, -3)
}

// ToMilliunits converts a decimal currency amount to milliunits,
// rounding to the nearest milliunit.
func ToMilliunits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(MilliunitsPerUnit)).Round(0).IntPart()
}

// AbsMilliunits returns the magnitude of a milliunit amount.
func AbsMilliunits(m int64) int64 {
	if m < 0 {
		return -m
	}
	return m
}
