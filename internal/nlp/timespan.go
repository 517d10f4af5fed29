package nlp

import (
	"fmt"
	"regexp"
	"strings"
)

// timeSpan holds the normalized start and optional end time of an event.
// Zero values mean no time token was found; that is not an error.
type timeSpan struct {
	start string // HH:MM, 24-hour
	end   string
}

// One pattern captures both endpoints, so an end time can never exist
// without a start time. The primary token is introduced by "at" or "from";
// the optional range tail by "to".
var timeSpanRe = regexp.MustCompile(`(?i)\b(?:at|from)\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b` +
	`(?:\s+to\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b)?`)

// extractTimeSpan finds the primary time token and an optional "to" range.
// Each endpoint is meridiem-normalized on its own; the end time does not
// inherit the start time's am/pm. Tokens with impossible clock values
// (hour 27, minute 75) are treated as not-a-time rather than emitted.
func extractTimeSpan(text string) timeSpan {
	m := timeSpanRe.FindStringSubmatch(text)
	if m == nil {
		return timeSpan{}
	}

	start, ok := normalizeClock(m[1], m[2], m[3])
	if !ok {
		return timeSpan{}
	}

	span := timeSpan{start: start}
	if m[4] != "" {
		if end, ok := normalizeClock(m[4], m[5], m[6]); ok {
			span.end = end
		}
	}
	return span
}

// normalizeClock converts hour/minute/meridiem captures to 24-hour "HH:MM".
// pm adds 12 to hours 1-11 (12pm stays 12); am maps 12 to 0 (midnight).
// Without a meridiem the hour is taken as a 24-hour value.
func normalizeClock(hourStr, minStr, meridiem string) (string, bool) {
	hour := mustAtoi(hourStr)
	minute := 0
	if minStr != "" {
		minute = mustAtoi(minStr)
	}
	if minute > 59 {
		return "", false
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
