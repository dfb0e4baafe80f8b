package types

import "time"

const (
	// DefaultBudget is the budget a freshly created trip starts with.
	DefaultBudget = 1000.0
	// DefaultTravelers is the traveler count a freshly created trip starts with.
	DefaultTravelers = 1
	// MaxTravelers is the upper bound the trip form accepts.
	MaxTravelers = 20
)

// Trip is a named planning unit. Dates are nil until the user sets them.
type Trip struct {
	Name        string     `json:"name" yaml:"name"`
	Destination string     `json:"destination" yaml:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Budget      float64    `json:"budget" yaml:"budget"`
	Travelers   int        `json:"travelers" yaml:"travelers"`
}

// HasDates reports whether both start and end dates are set.
func (t Trip) HasDates() bool { return t.StartDate != nil && t.EndDate != nil }

// TripUpdate carries the fields the plan form overwrites on a trip.
type TripUpdate struct {
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      float64    `json:"budget"`
	Travelers   int        `json:"travelers"`
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NumDays returns the inclusive length of the trip in days. It fails with
// ErrDatesUnset when either date is missing and ErrInvalidDateRange when the
// end precedes the start.
func (t Trip) NumDays() (int, error) {
	if !t.HasDates() {
		return 0, ErrDatesUnset
	}
	days := int(Day(*t.EndDate).Sub(Day(*t.StartDate)).Hours()/24) + 1
	if days < 1 {
		return 0, ErrInvalidDateRange
	}
	return days, nil
}

// DateOf returns the calendar date of the 1-based day index. The trip must
// have a start date.
func (t Trip) DateOf(day int) time.Time {
	return Day(*t.StartDate).AddDate(0, 0, day-1)
}
