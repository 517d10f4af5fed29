package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative-date patterns, in precedence order. First match wins.
var (
	todayRe      = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowRe   = regexp.MustCompile(`(?i)\btomorrow\b`)
	yesterdayRe  = regexp.MustCompile(`(?i)\byesterday\b`)
	inDaysRe     = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`)
	afterDaysRe  = regexp.MustCompile(`(?i)\bafter\s+(\d+)\s+days?\b`)
	beforeDaysRe = regexp.MustCompile(`(?i)\bbefore\s+(\d+)\s+days?\b`)
	nextMonthRe  = regexp.MustCompile(`(?i)\bnext\s+month\b`)
	nextYearRe   = regexp.MustCompile(`(?i)\bnext\s+year\b`)

	weekdayAlt    = `sunday|monday|tuesday|wednesday|thursday|friday|saturday`
	nextWeekdayRe = regexp.MustCompile(`(?i)\bnext\s+(` + weekdayAlt + `)\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveRelative matches the relative-date keywords against the whole
// input and resolves the first hit against now's calendar date.
// Returns false when no relative pattern appears, signaling the caller
// to try absolute-date resolution.
func resolveRelative(text string, now time.Time) (time.Time, bool) {
	day := startOfDay(now)

	switch {
	case todayRe.MatchString(text):
		return day, true
	case tomorrowRe.MatchString(text):
		return day.AddDate(0, 0, 1), true
	case yesterdayRe.MatchString(text):
		return day.AddDate(0, 0, -1), true
	}

	if m := inDaysRe.FindStringSubmatch(text); m != nil {
		return day.AddDate(0, 0, mustAtoi(m[1])), true
	}
	if m := afterDaysRe.FindStringSubmatch(text); m != nil {
		return day.AddDate(0, 0, mustAtoi(m[1])), true
	}
	if m := beforeDaysRe.FindStringSubmatch(text); m != nil {
		return day.AddDate(0, 0, -mustAtoi(m[1])), true
	}

	if nextMonthRe.MatchString(text) {
		// Day fixed to the 1st, not carried over from today.
		return time.Date(day.Year(), day.Month()+1, 1, 0, 0, 0, 0, day.Location()), true
	}
	if nextYearRe.MatchString(text) {
		return time.Date(day.Year()+1, time.January, 1, 0, 0, 0, 0, day.Location()), true
	}

	if m := nextWeekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdays[strings.ToLower(m[1])]
		ahead := (int(target) - int(day.Weekday()) + 7) % 7
		if ahead == 0 {
			// "next monday" on a Monday means a week out, never today.
			ahead = 7
		}
		return day.AddDate(0, 0, ahead), true
	}

	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mustAtoi converts a string already validated as \d+ by a regexp.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
