package nlp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday, 2025-06-10, mid-afternoon. The time-of-day must never leak
// into resolved dates.
var testNow = time.Date(2025, 6, 10, 15, 4, 0, 0, time.Local)

func singleEvent(t *testing.T, input string) Event {
	t.Helper()
	res := ParseAt(input, testNow)
	require.Len(t, res.Events, 1, "input %q should produce one event", input)
	require.Empty(t, res.Warning)
	return res.Events[0]
}

func TestParseAt_BlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		res := ParseAt(input, testNow)
		assert.Empty(t, res.Events, "input %q", input)
		assert.Empty(t, res.Warning, "blank input must not warn")
	}
}

func TestParseAt_Unrecognized(t *testing.T) {
	res := ParseAt("gibberish text without a date", testNow)
	assert.Empty(t, res.Events)
	assert.Equal(t, NoDateWarning, res.Warning)
}

func TestParseAt_RelativeDates(t *testing.T) {
	tests := []struct {
		input string
		date  string
	}{
		{"Stand-up today", "2025-06-10"},
		{"Meeting tomorrow", "2025-06-11"},
		{"Missed call yesterday", "2025-06-09"},
		{"Review in 5 days", "2025-06-15"},
		{"Check in 1 day", "2025-06-11"},
		{"Follow up after 3 days", "2025-06-13"},
		{"Prep before 2 days", "2025-06-08"},
		{"Rent due next month", "2025-07-01"},
		{"Planning next year", "2026-01-01"},
		{"Gym next friday", "2025-06-13"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ev := singleEvent(t, tt.input)
			assert.Equal(t, tt.date, ev.Date)
		})
	}
}

func TestParseAt_NextWeekdayNeverToday(t *testing.T) {
	// testNow is a Tuesday; "next tuesday" must land a full week out.
	ev := singleEvent(t, "Sync next tuesday")
	assert.Equal(t, "2025-06-17", ev.Date)

	// And from any weekday the offset stays within [1,7].
	for offset := range 7 {
		now := testNow.AddDate(0, 0, offset)
		res := ParseAt("Gym next monday", now)
		require.Len(t, res.Events, 1)

		got, err := time.ParseInLocation("2006-01-02", res.Events[0].Date, time.Local)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, got.Weekday())

		days := int(got.Sub(startOfDay(now)).Hours() / 24)
		assert.GreaterOrEqual(t, days, 1)
		assert.LessOrEqual(t, days, 7)
	}
}

func TestParseAt_AbsoluteDates(t *testing.T) {
	tests := []struct {
		input string
		date  string
	}{
		{"Flight 2025-06-20", "2025-06-20"},
		{"Event 06/20/2025", "2025-06-20"},
		{"Review 7/4", "2025-07-04"},
		{"Dentist March 15 2025", "2025-03-15"},
		{"Dentist March 15, 2025", "2025-03-15"},
		{"Dentist 15 March", "2025-03-15"},
		{"Party sept 5", "2025-09-05"},
		{"Launch 1 Oct 2026", "2026-10-01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ev := singleEvent(t, tt.input)
			assert.Equal(t, tt.date, ev.Date)
		})
	}
}

func TestParseAt_RelativeWinsOverAbsolute(t *testing.T) {
	ev := singleEvent(t, "Reschedule 2025-06-20 to tomorrow")
	assert.Equal(t, "2025-06-11", ev.Date)
}

func TestParseAt_DateOverflowNormalizes(t *testing.T) {
	// Out-of-bounds components roll into the adjacent month rather than
	// rejecting the input.
	ev := singleEvent(t, "Ghost day February 30 2025")
	assert.Equal(t, "2025-03-02", ev.Date)
}

func TestParseAt_TimeNormalization(t *testing.T) {
	tests := []struct {
		input string
		time  string
	}{
		{"Call today at 12pm", "12:00"},
		{"Alarm today at 12am", "00:00"},
		{"Lunch tomorrow at 14:00", "14:00"},
		{"Standup today at 9", "09:00"},
		{"Dinner today at 7:15pm", "19:15"},
		{"Shift today from 6am", "06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ev := singleEvent(t, tt.input)
			assert.Equal(t, tt.time, ev.Time)
			assert.Empty(t, ev.EndTime)
		})
	}
}

func TestParseAt_TimeRange(t *testing.T) {
	ev := singleEvent(t, "Call after 3 days at 4pm to 5pm")
	assert.Equal(t, "2025-06-13", ev.Date)
	assert.Equal(t, "16:00", ev.Time)
	assert.Equal(t, "17:00", ev.EndTime)
	assert.Equal(t, "Call", ev.Title)
}

func TestParseAt_RangeEndsDoNotShareMeridiem(t *testing.T) {
	// The end time is normalized on its own: "to 2" is 02:00, not 14:00.
	ev := singleEvent(t, "Workshop today from 11am to 2")
	assert.Equal(t, "11:00", ev.Time)
	assert.Equal(t, "02:00", ev.EndTime)
}

func TestParseAt_NoTimeIsNotAnError(t *testing.T) {
	ev := singleEvent(t, "Meeting tomorrow")
	assert.Empty(t, ev.Time)
	assert.Empty(t, ev.EndTime)
}

func TestParseAt_TitleStripping(t *testing.T) {
	tests := []struct {
		input string
		title string
	}{
		{"Book meeting tomorrow at 10am", "Book meeting"},
		{"Dentist March 15 2025", "Dentist"},
		{"Flight 2025-06-20 at 6:30am", "Flight"},
		{"Gym next Monday", "Gym"},
		{"Team offsite 06/20/2025 from 9 to 17:00", "Team offsite"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ev := singleEvent(t, tt.input)
			assert.Equal(t, tt.title, ev.Title)
		})
	}
}

func TestParseAt_TitleFallback(t *testing.T) {
	// The entire input is consumed by date tokens; the title falls back
	// to the trimmed original so it is never empty.
	ev := singleEvent(t, "  tomorrow ")
	assert.Equal(t, "tomorrow", ev.Title)
}

func TestParseAt_Idempotent(t *testing.T) {
	input := "Book meeting tomorrow at 10am to 11am"
	first := ParseAt(input, testNow)
	second := ParseAt(input, testNow)
	assert.Equal(t, first, second)
}

func TestParseAt_Totality(t *testing.T) {
	inputs := []string{
		strings.Repeat("tomorrow ", 500),
		strings.Repeat("x", 10000),
		"at at at to to to 99:99",
		"13/45/0000",
		"next next next",
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { ParseAt(input, testNow) })
	}
}
