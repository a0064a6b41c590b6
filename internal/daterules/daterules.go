// Package daterules holds the calendar arithmetic and date-acceptability
// rules for the picker: Gregorian leap years, month lengths, and the
// validator that decides whether a candidate date may be selected.
package daterules

import (
	"fmt"
	"time"
)

// monthLengths is the standard table of days per month for a common year,
// indexed by 0-based month. February is resolved via IsLeapYear.
var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// februaryIndex is the 0-based index of February in monthLengths.
const februaryIndex = 1

// IsLeapYear reports whether year is a Gregorian leap year: divisible by
// 400, or divisible by 4 but not by 100.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	case year%4 == 0:
		return true
	default:
		return false
	}
}

// DaysInMonth returns the number of days in the given 0-based month
// (0 = January) of the given year. Out-of-range months return 0.
func DaysInMonth(monthIndex, year int) int {
	if monthIndex < 0 || monthIndex >= len(monthLengths) {
		return 0
	}
	if monthIndex == februaryIndex && IsLeapYear(year) {
		return monthLengths[februaryIndex] + 1
	}
	return monthLengths[monthIndex]
}

// Range is an inclusive span of disabled dates. Comparison is date-only:
// time-of-day on either bound is ignored.
type Range struct {
	Start time.Time
	End   time.Time
}

// Options controls which dates the validator accepts. The zero value
// rejects past dates, so use DefaultOptions (or set AllowPast explicitly)
// for the widget's default behavior.
type Options struct {
	// AllowPast permits dates before today. Defaults to true via
	// DefaultOptions.
	AllowPast bool

	// MinDate, when set, rejects dates before it (date-only comparison).
	MinDate *time.Time

	// MaxDate, when set, rejects dates after it (date-only comparison).
	MaxDate *time.Time

	// DisabledDates lists individual dates that cannot be selected.
	DisabledDates []time.Time

	// DisabledRanges lists inclusive spans that cannot be selected.
	DisabledRanges []Range
}

// DefaultOptions returns the widget's default validation behavior:
// past dates allowed, no bounds, no exclusions.
func DefaultOptions() Options {
	return Options{AllowPast: true}
}

// ValidationError is the structured failure returned by Validate. It is a
// plain error value, never a panic; it reports the first failing rule only.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks date against opts and returns nil if the date may be
// selected, or a *ValidationError naming the first failing rule. Rules run
// in a fixed order (invalid, past, below-min, above-max, disabled date,
// disabled range) and all comparisons strip time-of-day first. "Past" is
// judged against the real current date.
func Validate(date time.Time, opts Options) error {
	return ValidateAt(date, time.Now(), opts)
}

// ValidateAt is Validate with an explicit "now", for callers that own
// their clock (and for tests).
func ValidateAt(date, now time.Time, opts Options) error {
	if date.IsZero() {
		return &ValidationError{Reason: "invalid date"}
	}

	d := DateOnly(date)

	if !opts.AllowPast && d.Before(DateOnly(now)) {
		return &ValidationError{Reason: "past dates cannot be selected"}
	}
	if opts.MinDate != nil && d.Before(DateOnly(*opts.MinDate)) {
		return &ValidationError{
			Reason: fmt.Sprintf("date is before the earliest allowed date (%s)", DateOnly(*opts.MinDate).Format("2006-01-02")),
		}
	}
	if opts.MaxDate != nil && d.After(DateOnly(*opts.MaxDate)) {
		return &ValidationError{
			Reason: fmt.Sprintf("date is after the latest allowed date (%s)", DateOnly(*opts.MaxDate).Format("2006-01-02")),
		}
	}
	for _, dd := range opts.DisabledDates {
		if d.Equal(DateOnly(dd)) {
			return &ValidationError{Reason: "this date is not available"}
		}
	}
	for _, r := range opts.DisabledRanges {
		start, end := DateOnly(r.Start), DateOnly(r.End)
		if !d.Before(start) && !d.After(end) {
			return &ValidationError{Reason: "this date falls in an unavailable period"}
		}
	}

	return nil
}

// IsRestricted is the boolean projection of Validate: true when the date
// fails any rule.
func IsRestricted(date time.Time, opts Options) bool {
	return Validate(date, opts) != nil
}

// IsRestrictedAt is IsRestricted with an explicit "now".
func IsRestrictedAt(date, now time.Time, opts Options) bool {
	return ValidateAt(date, now, opts) != nil
}

// DateOnly strips the time-of-day and location from t, keeping the
// calendar date in UTC. All rule comparisons go through this.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
