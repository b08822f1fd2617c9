package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the layout dates are rendered with.
const DateLayout = "2006-01-02"

const hoursPerDay = 24

// ParseDate parses s in any layout dateparse understands and returns
// midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalid("date", "is required")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, s, err)
	}
	return day(t), nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysApart(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / hoursPerDay))
}

// AgeResult is an age broken into calendar parts plus totals.
type AgeResult struct {
	Years          int `json:"years"`
	Months         int `json:"months"`
	Days           int `json:"days"`
	TotalDays      int `json:"total_days"`
	TotalWeeks     int `json:"total_weeks"`
	DaysToBirthday int `json:"days_to_birthday"`
}

// Age computes the age on today of someone born on birth. Only the calendar
// day of each argument is used.
func Age(birth, today time.Time) (AgeResult, error) {
	birth, today = day(birth), day(today)
	if birth.After(today) {
		return AgeResult{}, invalid("birth_date", "must not be in the future")
	}
	years := today.Year() - birth.Year()
	months := int(today.Month()) - int(birth.Month())
	days := today.Day() - birth.Day()
	if days < 0 {
		months--
		days += daysIn(today.Year(), today.Month()-1)
	}
	if months < 0 {
		years--
		months += 12
	}

	total := daysApart(birth, today)
	next := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(today) {
		next = next.AddDate(1, 0, 0)
	}
	return AgeResult{
		Years:          years,
		Months:         months,
		Days:           days,
		TotalDays:      total,
		TotalWeeks:     total / 7,
		DaysToBirthday: daysApart(today, next),
	}, nil
}

// DaysBetweenResult is the absolute distance between two dates.
type DaysBetweenResult struct {
	Days   int     `json:"days"`
	Weeks  float64 `json:"weeks"`
	Months float64 `json:"months"`
	Years  float64 `json:"years"`
}

// Average month and year lengths in days.
const (
	DaysPerMonth = 30.44
	DaysPerYear  = 365.25
)

// DaysBetween returns the number of days between a and b in either order.
func DaysBetween(a, b time.Time) DaysBetweenResult {
	d := daysApart(day(a), day(b))
	if d < 0 {
		d = -d
	}
	f := float64(d)
	return DaysBetweenResult{Days: d, Weeks: f / 7, Months: f / DaysPerMonth, Years: f / DaysPerYear}
}

// ShiftDateInput moves Start forward, or backward when Subtract is set.
// Parts are applied in the order years, months, weeks, days.
type ShiftDateInput struct {
	Start    time.Time `json:"start"`
	Years    int       `json:"years"`
	Months   int       `json:"months"`
	Weeks    int       `json:"weeks"`
	Days     int       `json:"days"`
	Subtract bool      `json:"subtract"`
}

// ShiftDateResult is the resulting date and its weekday name.
type ShiftDateResult struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// ShiftDate adds or subtracts calendar parts from a date. Month arithmetic
// clamps to the last day of the target month, so Jan 31 + 1 month is the
// last day of February.
func ShiftDate(in ShiftDateInput) (ShiftDateResult, error) {
	if in.Start.IsZero() {
		return ShiftDateResult{}, invalid("start", "is required")
	}
	if in.Years < 0 || in.Months < 0 || in.Weeks < 0 || in.Days < 0 {
		return ShiftDateResult{}, invalid("amount", "must not be negative")
	}
	sign := 1
	if in.Subtract {
		sign = -1
	}
	t := addMonths(day(in.Start), sign*in.Years*12)
	t = addMonths(t, sign*in.Months)
	t = t.AddDate(0, 0, sign*(in.Weeks*7+in.Days))
	return ShiftDateResult{Date: t.Format(DateLayout), Weekday: t.Weekday().String()}, nil
}

func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	d := min(t.Day(), daysIn(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DurationResult is the span between two clock times.
type DurationResult struct {
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	TotalMinutes int     `json:"total_minutes"`
	TotalSeconds int     `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
}

// Duration measures from start to end, both "HH:MM". An end earlier than
// start is taken to be on the next day.
func Duration(start, end string) (DurationResult, error) {
	s, err := clockMinutes("start", start)
	if err != nil {
		return DurationResult{}, err
	}
	e, err := clockMinutes("end", end)
	if err != nil {
		return DurationResult{}, err
	}
	if e < s {
		e += hoursPerDay * 60
	}
	diff := e - s
	return DurationResult{
		Hours:        diff / 60,
		Minutes:      diff % 60,
		TotalMinutes: diff,
		TotalSeconds: diff * 60,
		TotalHours:   round(float64(diff)/60, 2),
	}, nil
}

func clockMinutes(field, s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, invalid(field, "must be HH:MM")
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, invalid(field, "must be HH:MM")
	}
	return h*60 + m, nil
}
