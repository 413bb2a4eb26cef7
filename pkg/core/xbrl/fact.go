package xbrl

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Decimals is the XBRL precision indicator: the power-of-ten place to which
// a numeric value is accurate, or infinite for exact values. The zero value
// is infinite precision, matching a fact reported without a decimals
// attribute.
type Decimals struct {
	Finite bool  `json:"finite,omitempty"`
	Places int32 `json:"places,omitempty"`
}

// InfiniteDecimals is the decimals value of an exactly reported number.
var InfiniteDecimals = Decimals{}

// DecimalsAt builds a finite decimals value, e.g. DecimalsAt(-6) for a
// number accurate to millions.
func DecimalsAt(places int32) Decimals {
	return Decimals{Finite: true, Places: places}
}

// Infinite reports whether the value was reported with exact precision.
func (d Decimals) Infinite() bool {
	return !d.Finite
}

// Min returns the less accurate of two decimals values; infinite precision
// never wins against a finite one.
func (d Decimals) Min(o Decimals) Decimals {
	if !d.Finite {
		return o
	}
	if !o.Finite {
		return d
	}
	if o.Places < d.Places {
		return o
	}
	return d
}

func (d Decimals) String() string {
	if !d.Finite {
		return "INF"
	}
	return strconv.FormatInt(int64(d.Places), 10)
}

// UnmarshalJSON accepts either a number or the literal "INF".
func (d *Decimals) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "INF" {
			*d = InfiniteDecimals
			return nil
		}
		return fmt.Errorf("invalid decimals value %q", s)
	}
	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid decimals value %s", string(b))
	}
	*d = DecimalsAt(n)
	return nil
}

// Unit is the measure of a numeric fact: numerator and optional denominator
// measure names, e.g. iso4217:USD or shares.
type Unit struct {
	Numerator   []QName `json:"numerator"`
	Denominator []QName `json:"denominator,omitempty"`
}

// DimensionAspect is one (dimension, member) pair of a fact's context.
type DimensionAspect struct {
	Dimension QName
	Member    QName
}

// Fact is a single reported data point. Facts are immutable once decoded;
// the engine only reads them.
type Fact struct {
	ID         string          // source location identifier within the document
	Index      int             // document order, assigned by the instance
	Concept    *Concept        // never nil
	Period     Period
	Dimensions map[QName]QName // explicit dimension aspects: axis -> member
	Unit       *Unit           // nil for non-numeric facts
	Nil        bool            // xsi:nil
	Value      string          // normalized string value
	Numeric    decimal.Decimal // parsed value for numeric, non-nil facts
	Decimals   Decimals
}

// DimensionValue returns the explicit member reported for the given
// dimension, or the zero QName when the fact does not carry that aspect.
func (f *Fact) DimensionValue(dimension QName) QName {
	return f.Dimensions[dimension]
}

// SortedDimensions returns the fact's explicit dimension aspects ordered by
// dimension name, so every rendering of the same context is identical.
func (f *Fact) SortedDimensions() []DimensionAspect {
	aspects := make([]DimensionAspect, 0, len(f.Dimensions))
	for dim, member := range f.Dimensions {
		aspects = append(aspects, DimensionAspect{Dimension: dim, Member: member})
	}
	sort.Slice(aspects, func(i, j int) bool {
		if aspects[i].Dimension.Namespace != aspects[j].Dimension.Namespace {
			return aspects[i].Dimension.Namespace < aspects[j].Dimension.Namespace
		}
		return aspects[i].Dimension.LocalName < aspects[j].Dimension.LocalName
	})
	return aspects
}
