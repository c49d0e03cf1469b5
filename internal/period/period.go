// Package period provides month and quarter buckets used as the time axis of
// the progress ledger and the review calendars.
//
// All arithmetic is done at month granularity. Day-of-month and time-of-day
// are ignored everywhere.
package period

import (
	"fmt"
	"time"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

// Month is a (month, year) reporting bucket. Month is 1-based.
type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Quarter is a (quarter, year) reporting bucket. Quarter is 1-based.
type Quarter struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

func QuarterOf(t time.Time) Quarter {
	return MonthOf(t).Quarter()
}

// QuarterOfMonth maps a 1-based month to its 1-based quarter.
func QuarterOfMonth(month int) int {
	return (month-1)/3 + 1
}

// index is the number of months since year 0, used for ordering and distance.
func (m Month) index() int {
	return m.Year*12 + m.Month - 1
}

func (m Month) Compare(other Month) int {
	switch a, b := m.index(), other.index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

func (m Month) Next() Month {
	if m.Month == 12 {
		return Month{Year: m.Year + 1, Month: 1}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Quarter() Quarter {
	return Quarter{Year: m.Year, Quarter: QuarterOfMonth(m.Month)}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

func (q Quarter) Compare(other Quarter) int {
	switch a, b := q.Year*4+q.Quarter, other.Year*4+other.Quarter; {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (q Quarter) Before(other Quarter) bool {
	return q.Compare(other) < 0
}

// Months returns the three months of the quarter in order.
func (q Quarter) Months() [3]Month {
	first := (q.Quarter-1)*3 + 1
	return [3]Month{
		{Year: q.Year, Month: first},
		{Year: q.Year, Month: first + 1},
		{Year: q.Year, Month: first + 2},
	}
}

func (q Quarter) Contains(m Month) bool {
	return m.Quarter() == q
}

func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Quarter, q.Year)
}

// MonthRange returns every month from start's month to end's month, both
// inclusive. It returns an empty slice when start falls after end.
func MonthRange(start, end time.Time) []Month {
	first, last := MonthOf(start), MonthOf(end)
	if last.Before(first) {
		return []Month{}
	}

	months := make([]Month, 0, last.index()-first.index()+1)
	for m := first; !last.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// WallClockUTC returns t's wall clock reading in its own location as a UTC
// time, keeping the calendar date and month that the caller wrote.
func WallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// InRange reports whether m is one of the months of MonthRange(start, end).
func InRange(m Month, start, end time.Time) bool {
	return !m.Before(MonthOf(start)) && !MonthOf(end).Before(m)
}

// QuarterRange returns every quarter touched by MonthRange(start, end) in
// order, each quarter once.
func QuarterRange(start, end time.Time) []Quarter {
	quarters := []Quarter{}
	for _, m := range MonthRange(start, end) {
		q := m.Quarter()
		if n := len(quarters); n > 0 && quarters[n-1] == q {
			continue
		}
		quarters = append(quarters, q)
	}
	return quarters
}

func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func ValidQuarter(quarter int) bool {
	return quarter >= 1 && quarter <= 4
}

func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}
