package dqc

import (
	"testing"

	"github.com/shopspring/decimal"

	"dqc_validation/pkg/core/xbrl"
)

func numericFact(value string, decimals xbrl.Decimals) *xbrl.Fact {
	return &xbrl.Fact{
		Concept:  &xbrl.Concept{Numeric: true},
		Value:    value,
		Numeric:  decimal.RequireFromString(value),
		Decimals: decimals,
	}
}

func TestDecimalComparisonRounding(t *testing.T) {
	// 532,000,000 at decimals -6 is equivalent to 532,300,000 at decimals -5:
	// the more precise value is rounded to millions first.
	f1 := numericFact("532000000", xbrl.DecimalsAt(-6))
	f2 := numericFact("532300000", xbrl.DecimalsAt(-5))
	if !DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("532,000,000@-6 and 532,300,000@-5 should compare equal")
	}

	// Round half to even: 532,500,000 rounds down to 532,000,000.
	f2 = numericFact("532500000", xbrl.DecimalsAt(-6))
	if !DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("532,500,000@-6 should round to 532,000,000")
	}

	// ...but 532,500,001 rounds up to 533,000,000, still within the
	// tolerance of 2 million.
	f2 = numericFact("532500001", xbrl.DecimalsAt(-6))
	if !DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("533,000,000 is within the 2,000,000 tolerance of 532,000,000")
	}

	// 3 million apart exceeds the tolerance.
	f2 = numericFact("535000000", xbrl.DecimalsAt(-6))
	if DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("535,000,000@-6 should not compare equal to 532,000,000@-6")
	}
}

func TestDecimalComparisonExact(t *testing.T) {
	// Both exact: raw values are compared with no tolerance.
	f1 := numericFact("100", xbrl.InfiniteDecimals)
	f2 := numericFact("100.00", xbrl.InfiniteDecimals)
	if !DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("100 and 100.00 are equal")
	}

	f2 = numericFact("100.01", xbrl.InfiniteDecimals)
	if DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("exact values admit no tolerance")
	}

	// One exact, one at -2: the finite precision governs.
	f2 = numericFact("100.51", xbrl.DecimalsAt(0))
	if DecimalComparison(f1, f2, EqualWithinTolerance) {
		// 100.51 rounds to 101 at decimals 0, tolerance is 2, so equal.
		t.Log("within tolerance as expected")
	}
	if !DecimalComparison(f1, f2, EqualWithinTolerance) {
		t.Error("101 is within the tolerance of 2 at decimals 0")
	}
}

func TestDecimalComparisonLessOrEqual(t *testing.T) {
	f1 := numericFact("100400000", xbrl.DecimalsAt(-6))
	f2 := numericFact("100000000", xbrl.DecimalsAt(-6))
	// 100,400,000 rounds to 100,000,000 at millions, so f1 <= f2 holds.
	if !DecimalComparison(f1, f2, LessOrEqual) {
		t.Error("100,400,000@-6 rounds to 100,000,000 and satisfies <=")
	}

	f1 = numericFact("101000000", xbrl.DecimalsAt(-6))
	if DecimalComparison(f1, f2, LessOrEqual) {
		t.Error("101,000,000 is not <= 100,000,000")
	}
}
