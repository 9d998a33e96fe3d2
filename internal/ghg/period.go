package ghg

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the ISO calendar-date form reporting periods use on the wire.
const dateLayout = "2006-01-02"

// MaxPeriodDays is the longest reporting period that passes without a
// LONG_REPORTING_PERIOD warning. 366 accommodates leap years.
const MaxPeriodDays = 366

// Date is an ISO calendar date. The zero value means "not provided", which
// the validation rules treat as a missing required field rather than an
// encoding error.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON accepts "YYYY-MM-DD", a full RFC 3339 timestamp, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ParseDate parses an ISO calendar date string ("2024-01-31").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// Period is the reporting period activity data covers.
type Period struct {
	StartDate     Date `json:"start_date"`
	EndDate       Date `json:"end_date"`
	ReportingYear int  `json:"reporting_year"`
}

// Days returns the period length in whole days, rounded down. Zero when
// either bound is unset.
func (p Period) Days() int {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return 0
	}
	return int(p.EndDate.Sub(p.StartDate.Time) / (24 * time.Hour))
}

// Chronological reports whether the period's bounds are present and ordered
// start before end.
func (p Period) Chronological() bool {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return false
	}
	return p.StartDate.Before(p.EndDate.Time)
}

// MatchesYear reports whether either bound falls in the declared reporting
// year. A mismatch on both ends usually signals a data-entry error.
func (p Period) MatchesYear() bool {
	if p.ReportingYear == 0 {
		return false
	}
	return p.StartDate.Year() == p.ReportingYear || p.EndDate.Year() == p.ReportingYear
}
