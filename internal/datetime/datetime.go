// Package datetime pulls a best-guess calendar date and time of day out of
// free text such as "schedule dentist Jan 5 at 3pm".
//
// The matching is deliberately loose. Dates are recognised in a handful of
// month-name and numeric forms; times accept any H[:MM][am|pm] run of digits,
// which means incidental numbers ("call room 5 today") are read as a time.
package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of a successful extraction.
type Result struct {
	Date    time.Time // midnight of the extracted day, in the caller's location
	ISODate string    // YYYY-MM-DD
	Time    string    // HH:MM (24-hour), or "" when no time was found
}

// AllDay reports whether no time of day was found.
func (r Result) AllDay() bool {
	return r.Time == ""
}

const monthNames = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthNames + `)\b\.?`)
	monthDayRe = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	// "may" is left out: on its own it is far more often a verb than a month.
	monthOnlyRe = regexp.MustCompile(`(?i)\b(january|february|march|april|june|july|august|september|october|november|december)\b`)
	numericRe   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
	timeRe      = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Extract finds a date and an optional time in text, relative to now.
// It returns false when no date is present; callers must not default to today.
func Extract(text string, now time.Time) (Result, bool) {
	date, start, end, ok := findDate(text, now)
	if !ok {
		return Result{}, false
	}

	// The date's own digits are not candidates for the time.
	rest := text[:start] + " " + text[end:]

	return Result{
		Date:    date,
		ISODate: date.Format("2006-01-02"),
		Time:    ParseTime(rest),
	}, true
}

// ParseDate returns only the date part of Extract.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	date, _, _, ok := findDate(text, now)
	return date, ok
}

// ParseTime returns the first H[:MM][am|pm] candidate in text that forms a
// valid clock time, formatted HH:MM, or "" if there is none.
func ParseTime(text string) string {
	for _, m := range timeRe.FindAllStringSubmatch(text, -1) {
		if t, ok := clockTime(m[1], m[2], m[3]); ok {
			return t
		}
	}
	return ""
}

func findDate(text string, now time.Time) (time.Time, int, int, bool) {
	if m := dayMonthRe.FindStringSubmatchIndex(text); m != nil {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month := months[strings.ToLower(text[m[4]:m[5]])]
		if d, ok := resolve(month, day, now); ok {
			return d, m[0], m[1], true
		}
	}

	if m := monthDayRe.FindStringSubmatchIndex(text); m != nil {
		month := months[strings.ToLower(text[m[2]:m[3]])]
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		if d, ok := resolve(month, day, now); ok {
			return d, m[0], m[1], true
		}
	}

	if m := monthOnlyRe.FindStringSubmatchIndex(text); m != nil {
		month := months[strings.ToLower(text[m[2]:m[3]])]
		if d, ok := resolve(month, 1, now); ok {
			return d, m[0], m[1], true
		}
	}

	if m := numericRe.FindStringSubmatchIndex(text); m != nil {
		month, _ := strconv.Atoi(text[m[2]:m[3]])
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		if month >= 1 && month <= 12 {
			if d, ok := resolve(time.Month(month), day, now); ok {
				return d, m[0], m[1], true
			}
		}
	}

	return time.Time{}, 0, 0, false
}

// resolve places month/day in the current year, rolling to next year when
// that day is already behind today. A date equal to today stays in the
// current year even when the hour has passed.
func resolve(month time.Month, day int, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	year := now.Year()
	if validDay(year, month, day) {
		d := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		if !d.Before(today) {
			return d, true
		}
	}

	year++
	if !validDay(year, month, day) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
}

func validDay(year int, month time.Month, day int) bool {
	if day < 1 {
		return false
	}
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

func clockTime(hourStr, minStr, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}

	minute := 0
	if minStr != "" {
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute > 59 {
			return "", false
		}
	}

	switch strings.ToLower(meridiem) {
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
