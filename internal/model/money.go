package model

import "github.com/shopspring/decimal"

// FormatMinor renders an amount in minor units (kobo, cents) with two decimals.
func FormatMinor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
