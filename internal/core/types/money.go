// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// MinorUnits represents a monetary value in minor currency units (cents).
// All sale arithmetic is exact integer arithmetic on this type; no
// floating-point rounding is permitted because change due is displayed to
// the operator verbatim.
// Storage: int64 - sufficient for ±922 trillion minor units.
type MinorUnits int64

func (m MinorUnits) IsZero() bool     { return m == 0 }
func (m MinorUnits) IsPositive() bool { return m > 0 }
func (m MinorUnits) IsNegative() bool { return m < 0 }
func (m MinorUnits) Neg() MinorUnits  { return -m }
func (m MinorUnits) Abs() MinorUnits {
	if m < 0 {
		return -m
	}
	return m
}

// Int64 returns the raw minor-unit value.
func (m MinorUnits) Int64() int64 { return int64(m) }

// Decimal converts to a decimal value in minor units.
// Used by reporting where division (averages, shares) is needed.
func (m MinorUnits) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Money is a full-precision decimal value for derived metrics
// (average ticket, percentages). Never used for sale settlement.
type Money = decimal.Decimal
