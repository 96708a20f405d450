package valueobject

import "time"

// Month identifies a calendar month in UTC.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the UTC calendar month t falls in.
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns the first instant of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Key returns the month as "YYYY-MM".
func (m Month) Key() string {
	return m.Start().Format("2006-01")
}

// Label returns the month as "Jan 2006".
func (m Month) Label() string {
	return m.Start().Format("Jan 2006")
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	return m.Start().Before(other.Start())
}
