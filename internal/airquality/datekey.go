package airquality

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey is a parsed Y-M-D date that keeps the raw string it came from.
// Both "2000-2-1" and "2000-02-01" are accepted.
type DateKey struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Raw   string `json:"raw"`
}

// MonthKey groups dates for slider ticks and month buckets.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// String formats the key the way slider labels show it, e.g. "3/2001".
func (m MonthKey) String() string {
	return fmt.Sprintf("%d/%d", m.Month, m.Year)
}

// Compare orders month keys chronologically.
func (m MonthKey) Compare(o MonthKey) int {
	if c := cmp.Compare(m.Year, o.Year); c != 0 {
		return c
	}
	return cmp.Compare(m.Month, o.Month)
}

// ParseDateKey splits raw on '-' into year, month and day.
func ParseDateKey(raw string) (DateKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return DateKey{}, &MalformedDateError{Raw: raw, Reason: fmt.Sprintf("expected 3 parts, got %d", len(parts))}
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return DateKey{}, &MalformedDateError{Raw: raw, Reason: fmt.Sprintf("part %q is not numeric", p)}
		}
		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 {
		return DateKey{}, &MalformedDateError{Raw: raw, Reason: "month out of range"}
	}
	if nums[2] < 1 || nums[2] > 31 {
		return DateKey{}, &MalformedDateError{Raw: raw, Reason: "day out of range"}
	}

	d := DateKey{Year: nums[0], Month: nums[1], Day: nums[2], Raw: raw}
	if t := d.Time(); t.Day() != d.Day || int(t.Month()) != d.Month {
		return DateKey{}, &MalformedDateError{Raw: raw, Reason: "day out of range for month"}
	}
	return d, nil
}

// MonthKey returns the (year, month) bucket of d.
func (d DateKey) MonthKey() MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

// SameTick reports whether a and b fall on the same slider tick.
func (d DateKey) SameTick(o DateKey) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// Time returns midnight UTC of d.
func (d DateKey) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Timestamp returns d as Unix milliseconds.
func (d DateKey) Timestamp() float64 {
	return float64(d.Time().UnixMilli())
}

// CompareMonth orders a and b by year then month; the day is ignored.
func CompareMonth(a, b DateKey) int {
	return a.MonthKey().Compare(b.MonthKey())
}

// CompareDay orders a and b by year, month and day.
func CompareDay(a, b DateKey) int {
	if c := CompareMonth(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}

// compareDates orders raw date strings chronologically, falling back to
// string order for ties and unparseable input so sorting stays total.
func compareDates(a, b DateKey) int {
	if c := CompareDay(a, b); c != 0 {
		return c
	}
	return strings.Compare(a.Raw, b.Raw)
}
