package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nlcal/internal/calgrid"
	"nlcal/internal/config"
	"nlcal/internal/nlp"
)

// PickCmd opens a month-grid picker and prints the selected date range.
// When TEXT parses to an event, its date seeds the cursor.
type PickCmd struct {
	Text string `arg:"" optional:"" help:"Natural-language text to pre-seed the cursor date."`
}

func (cmd *PickCmd) Run(globals *Globals) error {
	cfg, _ := config.Load()

	seed := time.Now()
	if cmd.Text != "" {
		if res := nlp.Parse(cmd.Text); len(res.Events) > 0 {
			if t, err := time.ParseInLocation("2006-01-02", res.Events[0].Date, time.Local); err == nil {
				seed = t
			}
		}
	}

	m := newPickModel(seed, weekStartDay(cfg))
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker TUI: %w", err)
	}

	fm := finalModel.(pickModel)
	if fm.chosen == nil {
		if globals.JSON {
			fmt.Fprintln(os.Stdout, `{"status":"cancelled"}`)
		}
		return nil
	}

	if globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(fm.chosen)
	}
	fmt.Fprintf(os.Stdout, "%s → %s\n", fm.chosen.Start, fm.chosen.End)
	return nil
}

func weekStartDay(cfg config.Config) time.Weekday {
	if cfg.WeekStart == "sun" {
		return time.Sunday
	}
	return time.Monday
}

// pickModel is the Bubble Tea model for the date-range picker.
type pickModel struct {
	month     calgrid.Month
	cursor    time.Time
	weekStart time.Weekday
	today     time.Time
	anchor    *time.Time     // first enter sets the range start
	chosen    *nlp.DateRange // set when the second enter lands
}

func newPickModel(seed time.Time, weekStart time.Weekday) pickModel {
	day := time.Date(seed.Year(), seed.Month(), seed.Day(), 0, 0, 0, 0, time.Local)
	now := time.Now()
	return pickModel{
		month:     calgrid.Of(day),
		cursor:    day,
		weekStart: weekStart,
		today:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
	}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h":
		m.setCursor(m.cursor.AddDate(0, 0, -1))
	case "right", "l":
		m.setCursor(m.cursor.AddDate(0, 0, 1))
	case "up", "k":
		m.setCursor(m.cursor.AddDate(0, 0, -7))
	case "down", "j":
		m.setCursor(m.cursor.AddDate(0, 0, 7))

	case "pgup", "[":
		m.month = m.month.Prev()
		m.clampCursorToMonth()
	case "pgdown", "]":
		m.month = m.month.Next()
		m.clampCursorToMonth()

	case "t":
		m.setCursor(m.today)

	case "enter", " ":
		if m.anchor == nil {
			anchor := m.cursor
			m.anchor = &anchor
			return m, nil
		}
		start, end := *m.anchor, m.cursor
		if end.Before(start) {
			start, end = end, start
		}
		m.chosen = &nlp.DateRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		}
		return m, tea.Quit
	}

	return m, nil
}

// setCursor moves the cursor, following it across month boundaries.
func (m *pickModel) setCursor(t time.Time) {
	m.cursor = t
	if !m.month.Contains(t) {
		m.month = calgrid.Of(t)
	}
}

// clampCursorToMonth keeps the cursor inside the shown month after paging.
func (m *pickModel) clampCursorToMonth() {
	if m.month.Contains(m.cursor) {
		return
	}
	day := min(m.cursor.Day(), m.month.Days())
	m.cursor = time.Date(m.month.Year, m.month.Month, day, 0, 0, 0, 0, time.Local)
}

// inRange reports whether t lies between the anchor and the cursor.
func (m pickModel) inRange(t time.Time) bool {
	if m.anchor == nil {
		return false
	}
	lo, hi := *m.anchor, m.cursor
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	return !t.Before(lo) && !t.After(hi)
}

var (
	pickTitleStyle  = lipgloss.NewStyle().Bold(true)
	pickHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pickHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Reverse(true)
	pickRangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	pickTodayStyle  = lipgloss.NewStyle().Underline(true)
)

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(pickTitleStyle.Render(m.month.First().Format("January 2006")))
	b.WriteString("\n\n")

	headers := calgrid.Headers(m.weekStart)
	b.WriteString(pickHeaderStyle.Render(" " + strings.Join(headers, "  ")))
	b.WriteString("\n")

	for _, week := range calgrid.Weeks(m.month, m.weekStart) {
		for _, day := range week {
			if day.IsZero() {
				b.WriteString("    ")
				continue
			}
			cell := fmt.Sprintf("%3d", day.Day())
			switch {
			case day.Equal(m.cursor):
				cell = pickCursorStyle.Render(cell)
			case m.inRange(day):
				cell = pickRangeStyle.Render(cell)
			case day.Equal(m.today):
				cell = pickTodayStyle.Render(cell)
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.anchor != nil {
		b.WriteString(pickRangeStyle.Render(
			fmt.Sprintf("range start: %s", m.anchor.Format("2006-01-02"))))
		b.WriteString("\n")
	}
	b.WriteString(pickHelpStyle.Render(m.helpText()))
	return b.String()
}

func (m pickModel) helpText() string {
	if m.anchor == nil {
		return "↑↓←→: move   [ ]: month   t: today   enter: start range   q: quit"
	}
	return "↑↓←→: move   [ ]: month   enter: end range   q: quit"
}
