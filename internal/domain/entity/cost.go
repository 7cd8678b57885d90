package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateRange is an inclusive pair of UTC calendar dates, both at midnight.
// Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a DateRange from two instants, truncating both to
// their UTC calendar date.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := Midnight(start)
	e := Midnight(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("invalid range: %s is after %s",
			s.Format("2006-01-02"), e.Format("2006-01-02"))
	}
	return DateRange{Start: s, End: e}, nil
}

// Midnight truncates an instant to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether the given UTC date falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Midnight(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range as "YYYY-MM-DD to YYYY-MM-DD", or a single date
// when start and end coincide.
func (r DateRange) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// CostBucket holds one UTC day's cost in minor currency units (cents).
// Amounts stay integral until formatting so long reports don't accumulate
// floating point drift.
type CostBucket struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
}

// Report is the cost data for a resolved date range: the per-day buckets
// the service returned for the range, in date order, plus the unmodified
// response payload for raw output.
type Report struct {
	Range      DateRange       `json:"range"`
	Buckets    []CostBucket    `json:"buckets"`
	TotalCents int64           `json:"total_cents"`
	Raw        json.RawMessage `json:"-"`
}

// Total recomputes the report total by summing bucket amounts in cents.
func (r Report) Total() int64 {
	var total int64
	for _, b := range r.Buckets {
		total += b.AmountCents
	}
	return total
}

// FormatCents renders an amount of cents as a dollar string with two
// decimal places, e.g. 747 -> "$7.47". Conversion happens here and nowhere
// else; everything upstream works in integer cents.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
