package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimeOfDay is a wall-clock time expressed as fractional hours from midnight,
// e.g. 16.25 is 16:15:00. It serializes as "HH:MM:SS".
type TimeOfDay float64

// Hours returns the time as fractional hours.
func (t TimeOfDay) Hours() float64 {
	return float64(t)
}

// ClockString formats the time as HH:MM:SS.
func (t TimeOfDay) ClockString() string {
	totalSeconds := int(math.Round(float64(t) * 3600))
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ClockString())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil || n < 2 {
		if n, err2 := fmt.Sscanf(s, "%d:%d", &h, &m); err2 != nil || n != 2 {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		sec = 0
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(float64(h) + float64(m)/60 + float64(sec)/3600), nil
}

// Date is a calendar date without a time component. It serializes as "YYYY-MM-DD".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight on d in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Key returns the date as a sortable integer, e.g. 20250607.
func (d Date) Key() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// DaysUntil returns the number of whole calendar days from d to other.
// Negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	diff := other.Time(time.UTC).Sub(d.Time(time.UTC))
	return int(math.Round(diff.Hours() / 24))
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses "YYYY-MM-DD" into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}
