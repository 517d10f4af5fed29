package nlp

import (
	"regexp"
	"strings"
	"time"
)

// Month-name table: full names plus common abbreviations ("sept" counts
// as September). Static data by design, so resolution stays deterministic
// and locale-independent.
var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Longest alternatives first so "september" is not captured as "sep".
const monthAlt = `january|february|september|november|december|october|august|march|april|june|july|sept|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

// Absolute-date patterns, in precedence order.
var (
	isoRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	monthDayRe = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\.?\s+(\d{1,2})(?:,?\s+(\d{4}))?\b`)
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlt + `)(?:\s+(\d{4}))?\b`)
)

// resolveAbsolute looks for an explicit date anywhere in the text:
// ISO, then M/D[/YYYY], then "Month Day [Year]", then "Day Month [Year]".
// A missing year defaults to now's year. Components are not range-checked:
// out-of-bounds days and months roll over via standard calendar arithmetic
// (time.Date semantics), so "February 30" lands in early March.
func resolveAbsolute(text string, now time.Time) (time.Time, bool) {
	if m := isoRe.FindStringSubmatch(text); m != nil {
		return makeDate(mustAtoi(m[1]), mustAtoi(m[2]), mustAtoi(m[3]), now), true
	}
	if m := numericRe.FindStringSubmatch(text); m != nil {
		year := now.Year()
		if m[3] != "" {
			year = mustAtoi(m[3])
		}
		return makeDate(year, mustAtoi(m[1]), mustAtoi(m[2]), now), true
	}
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		year := now.Year()
		if m[3] != "" {
			year = mustAtoi(m[3])
		}
		month := months[strings.ToLower(m[1])]
		return makeDate(year, int(month), mustAtoi(m[2]), now), true
	}
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		year := now.Year()
		if m[3] != "" {
			year = mustAtoi(m[3])
		}
		month := months[strings.ToLower(m[2])]
		return makeDate(year, int(month), mustAtoi(m[1]), now), true
	}
	return time.Time{}, false
}

func makeDate(year, month, day int, now time.Time) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
}
