// Package ics serializes stored events as an iCalendar document.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"nlcal/internal/store"
)

// Timed events without an explicit end get this default duration.
const defaultDuration = time.Hour

// Export renders entries as a VCALENDAR. Entries with a time become timed
// VEVENTs (end defaults to start + 1h); date-only entries become all-day
// events. The store ID is reused as the UID.
func Export(entries []store.Entry) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//nlcal//EN")

	for _, entry := range entries {
		if err := addEvent(cal, entry); err != nil {
			return "", err
		}
	}

	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, entry store.Entry) error {
	date, err := time.ParseInLocation("2006-01-02", entry.Date, time.Local)
	if err != nil {
		return fmt.Errorf("entry %s: bad date %q: %w", entry.ID, entry.Date, err)
	}

	ev := cal.AddEvent(entry.ID)
	ev.SetSummary(entry.Title)
	ev.SetDtStampTime(time.Now().UTC())

	if entry.Time == "" {
		// Date-only: all-day event.
		ev.SetAllDayStartAt(date)
		ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
		return nil
	}

	start, err := atClock(date, entry.Time)
	if err != nil {
		return fmt.Errorf("entry %s: bad time %q: %w", entry.ID, entry.Time, err)
	}

	end := start.Add(defaultDuration)
	if entry.EndTime != "" {
		end, err = atClock(date, entry.EndTime)
		if err != nil {
			return fmt.Errorf("entry %s: bad end time %q: %w", entry.ID, entry.EndTime, err)
		}
		if !end.After(start) {
			// "11pm to 1" wraps past midnight.
			end = end.AddDate(0, 0, 1)
		}
	}

	ev.SetStartAt(start)
	ev.SetEndAt(end)
	return nil
}

// atClock combines a calendar date with an "HH:MM" string.
func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
