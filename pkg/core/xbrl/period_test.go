package xbrl

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatDateEndOfDay(t *testing.T) {
	// An end date of midnight 2021-01-01 means the end of 2020-12-31.
	got := FormatDate(date(2021, 1, 1), true)
	if got != "2020-12-31" {
		t.Errorf("end date expected 2020-12-31, got %s", got)
	}

	// Start dates are rendered verbatim.
	got = FormatDate(date(2021, 1, 1), false)
	if got != "2021-01-01" {
		t.Errorf("start date expected 2021-01-01, got %s", got)
	}

	// A value with an explicit time-of-day is rendered as a full timestamp.
	got = FormatDate(time.Date(2020, 12, 31, 17, 30, 0, 0, time.UTC), true)
	if got != "2020-12-31 17:30:00" {
		t.Errorf("timestamp expected 2020-12-31 17:30:00, got %s", got)
	}
}

func TestPeriodString(t *testing.T) {
	// Calendar year 2020: start 2020-01-01, end-of-day 2021-01-01.
	p := Duration(date(2020, 1, 1), date(2021, 1, 1))
	if got := p.String(); got != "2020-01-01 - 2020-12-31" {
		t.Errorf("duration expected \"2020-01-01 - 2020-12-31\", got %q", got)
	}

	p = Instant(date(2021, 1, 1))
	if got := p.String(); got != "2020-12-31" {
		t.Errorf("instant expected 2020-12-31, got %q", got)
	}

	if got := Forever().String(); got != "forever" {
		t.Errorf("forever expected \"forever\", got %q", got)
	}
}

func TestDurationDays(t *testing.T) {
	// 2020 is a leap year: 366 days.
	p := Duration(date(2020, 1, 1), date(2021, 1, 1))
	if got := p.DurationDays(); got != 366 {
		t.Errorf("duration days expected 366, got %d", got)
	}

	if got := Instant(date(2021, 1, 1)).DurationDays(); got != 0 {
		t.Errorf("instant duration expected 0, got %d", got)
	}

	if got := Forever().DurationDays(); got != MaxDurationDays {
		t.Errorf("forever duration expected MaxDurationDays, got %d", got)
	}
}

func TestPeriodEndDate(t *testing.T) {
	end := date(2021, 1, 1)
	if got := Duration(date(2020, 1, 1), end).EndDate(); !got.Equal(end) {
		t.Errorf("duration end expected %v, got %v", end, got)
	}
	if got := Instant(end).EndDate(); !got.Equal(end) {
		t.Errorf("instant end expected %v, got %v", end, got)
	}
	// Forever sorts after every real reporting date.
	if got := Forever().EndDate(); !got.Equal(MaxDate) {
		t.Errorf("forever end expected MaxDate, got %v", got)
	}
}

func TestDecimalsMin(t *testing.T) {
	// Infinite precision never wins against a finite one.
	if got := InfiniteDecimals.Min(DecimalsAt(-6)); got != DecimalsAt(-6) {
		t.Errorf("min(INF, -6) expected -6, got %s", got)
	}
	if got := DecimalsAt(-5).Min(DecimalsAt(-6)); got != DecimalsAt(-6) {
		t.Errorf("min(-5, -6) expected -6, got %s", got)
	}
	if got := DecimalsAt(2).Min(InfiniteDecimals); got != DecimalsAt(2) {
		t.Errorf("min(2, INF) expected 2, got %s", got)
	}
	if got := InfiniteDecimals.Min(InfiniteDecimals); !got.Infinite() {
		t.Errorf("min(INF, INF) expected INF, got %s", got)
	}
}
