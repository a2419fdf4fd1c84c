package reading

import (
	"fmt"
	"strings"
	"time"
)

// Duration is one of the six named goal periods.
type Duration string

const (
	DurationThisYear  Duration = "this year"
	DurationThisMonth Duration = "this month"
	DurationThisWeek  Duration = "this week"
	DurationNextYear  Duration = "next year"
	DurationNextMonth Duration = "next month"
	DurationNextWeek  Duration = "next week"
)

// Durations lists the recognized tokens in resolution order. ExtractDuration
// scans in this order and returns the first match, so the order is part of
// the contract.
var Durations = []Duration{
	DurationThisYear,
	DurationThisMonth,
	DurationThisWeek,
	DurationNextYear,
	DurationNextMonth,
	DurationNextWeek,
}

// ParseDuration matches s against the six tokens, case-insensitively.
func ParseDuration(s string) (Duration, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Durations {
		if normalized == string(d) {
			return d, true
		}
	}
	return "", false
}

// DueDate resolves a duration token to the concrete end of the named period:
// 23:59:59 on the period's last day, in now's location.
//
// Rules:
//   - this year  : Dec 31 of the current year
//   - this month : last calendar day of the current month (exact month
//     length, leap-year February included)
//   - this week  : the upcoming Sunday; weeks start on Monday
//   - next year / next month / next week : the same rule shifted by one
//     year, one month (December wraps to January), or seven days
func DueDate(d Duration, now time.Time) time.Time {
	loc := now.Location()
	switch d {
	case DurationThisYear:
		return endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, loc))
	case DurationNextYear:
		return endOfDay(time.Date(now.Year()+1, time.December, 31, 0, 0, 0, 0, loc))
	case DurationThisMonth:
		// First day of the next month minus one day; time.Date normalizes
		// month overflow, so December rolls into January correctly.
		return endOfDay(time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1))
	case DurationNextMonth:
		return endOfDay(time.Date(now.Year(), now.Month()+2, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1))
	case DurationThisWeek:
		return endOfDay(now.AddDate(0, 0, daysUntilSunday(now)))
	case DurationNextWeek:
		return endOfDay(now.AddDate(0, 0, daysUntilSunday(now)+7))
	}
	return endOfDay(now)
}

// Describe renders a duration as the human-readable fragment embedded in a
// goal description, e.g. "this year (by Dec 31, 2026)". The token itself is
// kept verbatim in the output so ExtractDuration can recover it later.
func Describe(d Duration, now time.Time) string {
	return fmt.Sprintf("%s (by %s)", d, DueDate(d, now).Format("Jan 2, 2006"))
}

// ExtractDuration recovers a duration token from a free-text description by
// scanning for the tokens as case-insensitive substrings, in the fixed order
// of Durations. First match wins: a description containing more than one
// token resolves to whichever appears earlier in the enumeration, not in the
// text. Goals persisted before durations became a first-class column rely on
// this to recover their period.
func ExtractDuration(description string) (Duration, bool) {
	normalized := strings.ToLower(description)
	for _, d := range Durations {
		if strings.Contains(normalized, string(d)) {
			return d, true
		}
	}
	return "", false
}

// daysUntilSunday returns the offset from now to the Sunday ending the
// current Monday-start week (0 when now is already Sunday).
func daysUntilSunday(now time.Time) int {
	weekdayFromMonday := (int(now.Weekday()) + 6) % 7
	return 6 - weekdayFromMonday
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
