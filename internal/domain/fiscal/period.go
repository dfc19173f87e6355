package fiscal

import (
	"fmt"
	"time"
)

// Period represents a concrete reporting period resolved from a
// (year, quarter, month) request. Start is inclusive, End exclusive.
// Quarter and month are mutually exclusive; when neither is set the
// period covers the full calendar year.
type Period struct {
	Year    int        `json:"year"`
	Quarter *int       `json:"quarter,omitempty"`
	Month   *int       `json:"month,omitempty"`
	Start   time.Time  `json:"start"`
	End     time.Time  `json:"end"`
}

// ResolvePeriod validates the requested year/quarter/month combination and
// resolves it into concrete date boundaries. It is a pure function.
func ResolvePeriod(year int, quarter, month *int) (Period, error) {
	if year < 1000 || year > 9999 {
		return Period{}, &InvalidPeriodError{Year: year, Quarter: quarter, Month: month,
			Reason: "year must be a 4-digit positive integer"}
	}
	if quarter != nil && month != nil {
		return Period{}, &InvalidPeriodError{Year: year, Quarter: quarter, Month: month,
			Reason: "quarter and month are mutually exclusive"}
	}
	if quarter != nil && (*quarter < 1 || *quarter > 4) {
		return Period{}, &InvalidPeriodError{Year: year, Quarter: quarter, Month: month,
			Reason: "quarter must be between 1 and 4"}
	}
	if month != nil && (*month < 1 || *month > 12) {
		return Period{}, &InvalidPeriodError{Year: year, Quarter: quarter, Month: month,
			Reason: "month must be between 1 and 12"}
	}

	p := Period{Year: year, Quarter: quarter, Month: month}
	switch {
	case quarter != nil:
		firstMonth := time.Month((*quarter-1)*3 + 1)
		p.Start = time.Date(year, firstMonth, 1, 0, 0, 0, 0, time.UTC)
		p.End = p.Start.AddDate(0, 3, 0)
	case month != nil:
		p.Start = time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		p.End = p.Start.AddDate(0, 1, 0)
	default:
		p.Start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		p.End = p.Start.AddDate(1, 0, 0)
	}
	return p, nil
}

// Label returns a short human-readable identifier, e.g. "2024", "2024-T1"
// or "2024-07". Used in error messages and cache keys.
func (p Period) Label() string {
	switch {
	case p.Quarter != nil:
		return fmt.Sprintf("%d-T%d", p.Year, *p.Quarter)
	case p.Month != nil:
		return fmt.Sprintf("%d-%02d", p.Year, *p.Month)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}

// Contains reports whether the given date falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := truncateToDay(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

// LastDay returns the last calendar day included in the period.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// OverlapDays computes the number of whole calendar days in the inclusive
// range [from, to] that fall inside the period. Returns 0 when there is no
// overlap or the range is inverted.
func (p Period) OverlapDays(from, to time.Time) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	start := truncateToDay(from)
	end := truncateToDay(to)
	if end.Before(start) {
		return 0
	}
	if start.Before(p.Start) {
		start = p.Start
	}
	if end.After(p.LastDay()) {
		end = p.LastDay()
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// daysInMonth returns the number of calendar days in the month of t.
func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
