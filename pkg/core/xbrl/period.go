package xbrl

import (
	"fmt"
	"math"
	"time"
)

// PeriodType discriminates the three period shapes a context may declare.
type PeriodType int

const (
	PeriodInstant PeriodType = iota
	PeriodDuration
	PeriodForever
)

// MaxDate is the sentinel end date for forever periods. It sorts after every
// real reporting date, so forever-period facts never satisfy "on or before"
// comparisons.
var MaxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// MaxDurationDays is the sentinel duration for forever periods.
const MaxDurationDays = math.MaxInt32

// Period is the tagged union Instant(date) | Duration(start, end) | Forever.
//
// Dates follow XBRL 2.1 end-of-day semantics: an end or instant date means
// midnight of the *following* calendar day. A date-only value read from a
// document is therefore shifted forward one day on decode, and shifted back
// one day when displayed (see FormatDate).
type Period struct {
	Type  PeriodType `json:"type"`
	Start time.Time  `json:"start,omitempty"` // duration periods only
	End   time.Time  `json:"end,omitempty"`   // duration end or instant
}

// Instant builds an instant period from an already end-of-day-adjusted time.
func Instant(t time.Time) Period {
	return Period{Type: PeriodInstant, End: t}
}

// Duration builds a duration period.
func Duration(start, end time.Time) Period {
	return Period{Type: PeriodDuration, Start: start, End: end}
}

// Forever builds a forever period.
func Forever() Period {
	return Period{Type: PeriodForever}
}

// EndDate returns the duration end date, the instant date, or MaxDate for
// forever periods.
func (p Period) EndDate() time.Time {
	switch p.Type {
	case PeriodDuration, PeriodInstant:
		return p.End
	default:
		return MaxDate
	}
}

// DurationDays returns the period length in days: end minus start for
// durations, 0 for instants and MaxDurationDays for forever periods.
func (p Period) DurationDays() int {
	switch p.Type {
	case PeriodDuration:
		return int(p.End.Sub(p.Start) / (24 * time.Hour))
	case PeriodInstant:
		return 0
	default:
		return MaxDurationDays
	}
}

// Equal reports whether two periods describe the same span.
func (p Period) Equal(o Period) bool {
	if p.Type != o.Type {
		return false
	}
	switch p.Type {
	case PeriodInstant:
		return p.End.Equal(o.End)
	case PeriodDuration:
		return p.Start.Equal(o.Start) && p.End.Equal(o.End)
	default:
		return true
	}
}

// String renders the period for display, undoing the end-of-day shift.
func (p Period) String() string {
	switch p.Type {
	case PeriodInstant:
		return FormatDate(p.End, true)
	case PeriodDuration:
		return fmt.Sprintf("%s - %s", FormatDate(p.Start, false), FormatDate(p.End, true))
	default:
		return "forever"
	}
}

// FormatDate renders a date value. A value carrying a nonzero time-of-day is
// rendered as a full timestamp. Otherwise, when isEnd is set the value
// represents the end of a day, which per XBRL 2.1 is midnight of the next
// day, so one day is subtracted before rendering the date part.
func FormatDate(val time.Time, isEnd bool) string {
	h, m, s := val.Clock()
	if h != 0 || m != 0 || s != 0 {
		return val.Format("2006-01-02 15:04:05")
	}
	if isEnd {
		val = val.AddDate(0, 0, -1)
	}
	return val.Format("2006-01-02")
}
