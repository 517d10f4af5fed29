package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlcal/internal/store"
)

func TestExport_TimedEvent(t *testing.T) {
	out, err := Export([]store.Entry{{
		ID:      "abc-123",
		Title:   "Team lunch",
		Date:    "2025-06-20",
		Time:    "12:30",
		EndTime: "13:30",
	}})
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	ev := cal.Events()[0]
	assert.Equal(t, "abc-123", ev.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "Team lunch", ev.GetProperty(ical.ComponentPropertySummary).Value)

	// The library serializes timestamps in UTC, so compare instants.
	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 6, 20, 12, 30, 0, 0, time.Local)))

	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 6, 20, 13, 30, 0, 0, time.Local)))
}

func TestExport_AllDayWhenNoTime(t *testing.T) {
	out, err := Export([]store.Entry{{
		ID:    "all-day",
		Title: "Holiday",
		Date:  "2025-07-04",
	}})
	require.NoError(t, err)

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250704")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250705")
}

func TestExport_EndDefaultsToAnHour(t *testing.T) {
	out, err := Export([]store.Entry{{
		ID:    "x",
		Title: "Call",
		Date:  "2025-06-20",
		Time:  "09:00",
	}})
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	start, err := cal.Events()[0].GetStartAt()
	require.NoError(t, err)
	end, err := cal.Events()[0].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestExport_BadDateErrors(t *testing.T) {
	_, err := Export([]store.Entry{{ID: "bad", Title: "x", Date: "not-a-date"}})
	assert.Error(t, err)
}
