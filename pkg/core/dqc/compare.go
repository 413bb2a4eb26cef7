package dqc

import (
	"github.com/shopspring/decimal"

	"dqc_validation/pkg/core/xbrl"
)

// CompareFunc is a comparison policy applied to two already-rounded values.
// The decimals argument is the precision both values were rounded to.
type CompareFunc func(v1, v2 decimal.Decimal, decimals xbrl.Decimals) bool

// DecimalComparison compares two numeric facts at the least accurate
// precision of the two. Filings report numbers at varying precisions
// (millions vs. exact dollars); 532,000,000 at decimals -6 is equivalent to
// 532,300,000 at decimals -5 once the latter is rounded to millions. When
// both facts are exact the raw values are compared directly; otherwise both
// are rounded half-to-even per XBRL 2.1 before cmp is applied.
func DecimalComparison(fact1, fact2 *xbrl.Fact, cmp CompareFunc) bool {
	decimals := fact1.Decimals.Min(fact2.Decimals)
	if decimals.Infinite() {
		return cmp(fact1.Numeric, fact2.Numeric, decimals)
	}
	v1 := fact1.Numeric.RoundBank(decimals.Places)
	v2 := fact2.Numeric.RoundBank(decimals.Places)
	return cmp(v1, v2, decimals)
}

// EqualWithinTolerance accepts a rounding difference of 2 at the reported
// scale: values at decimals -6 may differ by up to 2,000,000.
func EqualWithinTolerance(v1, v2 decimal.Decimal, decimals xbrl.Decimals) bool {
	if decimals.Infinite() {
		return v1.Equal(v2)
	}
	tolerance := decimal.New(2, -decimals.Places)
	return v1.Sub(v2).Abs().LessThanOrEqual(tolerance)
}

// LessOrEqual reports v1 <= v2. Rounding was already applied upstream.
func LessOrEqual(v1, v2 decimal.Decimal, _ xbrl.Decimals) bool {
	return v1.LessThanOrEqual(v2)
}
