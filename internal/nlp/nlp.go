// Package nlp extracts structured calendar events from short natural-language
// strings ("Lunch with Sam tomorrow at 1pm") using deterministic pattern
// heuristics. No learned model, no locale data, no hidden clock: every
// resolver is a pure function of the input text and an injectable "now".
package nlp

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// NoDateWarning is the warning attached to results for non-blank input
// that contains no recognizable date pattern.
const NoDateWarning = `No date found. Try "tomorrow", "next friday", or "June 5".`

// Event is a single extracted calendar event. Immutable once built.
// Time and EndTime are 24-hour "HH:MM" strings, present only when a time
// pattern matched; EndTime never appears without Time.
type Event struct {
	Title   string `json:"title"`
	Date    string `json:"date"`              // YYYY-MM-DD
	Time    string `json:"time,omitempty"`    // HH:MM
	EndTime string `json:"endTime,omitempty"` // HH:MM
}

// Result is the outcome of one parse call: zero or one events.
// Warning is set only when the input was non-blank and unrecognizable;
// blank input yields an empty Result with no warning.
type Result struct {
	Events  []Event `json:"events"`
	Warning string  `json:"warning,omitempty"`
}

// DateRange is an inclusive span of ISO dates, Start <= End. The parser
// never produces one; it is the shape the date-range picker emits.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Parse extracts an event from text using the wall clock as "now".
func Parse(text string) Result {
	return ParseAt(text, time.Now())
}

// ParseAt is the testable entry point with an explicit reference time.
// It never fails: every input terminates as empty, unrecognized (warning
// set), or a single event.
func ParseAt(text string, now time.Time) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}
	}

	// Relative patterns win over absolute ones.
	date, ok := resolveRelative(trimmed, now)
	if !ok {
		date, ok = resolveAbsolute(trimmed, now)
	}
	if !ok {
		return Result{Warning: NoDateWarning}
	}

	span := extractTimeSpan(trimmed)

	return Result{Events: []Event{{
		Title:   deriveTitle(trimmed),
		Date:    date.Format(isoDate),
		Time:    span.start,
		EndTime: span.end,
	}}}
}
