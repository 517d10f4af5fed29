package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"nlcal/internal/config"
	"nlcal/internal/nlp"
	"nlcal/internal/store"
)

var (
	cardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// formatClock renders a stored "HH:MM" per the configured clock.
// Unparseable values pass through untouched.
func formatClock(hhmm string, cfg config.Config) string {
	if cfg.Clock != 12 || hhmm == "" {
		return hhmm
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return strings.ToLower(t.Format("3:04pm"))
}

// formatSpan renders "12:30" or "12:30–13:30" for an event's time fields.
func formatSpan(start, end string, cfg config.Config) string {
	if start == "" {
		return "all day"
	}
	if end == "" {
		return formatClock(start, cfg)
	}
	return formatClock(start, cfg) + "–" + formatClock(end, cfg)
}

// formatDate renders an ISO date with its weekday ("Fri, 20 Jun 2025").
func formatDate(iso string) string {
	t, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	if err != nil {
		return iso
	}
	return t.Format("Mon, 2 Jan 2006")
}

// renderEventCard renders a parsed event as a bordered terminal card.
func renderEventCard(ev nlp.Event, cfg config.Config) string {
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(ev.Title))
	b.WriteString("\n")
	b.WriteString(cardLabelStyle.Render("date  ") + formatDate(ev.Date))
	b.WriteString("\n")
	b.WriteString(cardLabelStyle.Render("time  ") + formatSpan(ev.Time, ev.EndTime, cfg))
	return cardBorderStyle.Render(b.String())
}

// entryMarkdown composes the detail-pane markdown for a stored entry.
func entryMarkdown(entry store.Entry, cfg config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Title)
	fmt.Fprintf(&b, "- **Date:** %s\n", formatDate(entry.Date))
	fmt.Fprintf(&b, "- **Time:** %s\n", formatSpan(entry.Time, entry.EndTime, cfg))
	if entry.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
			fmt.Fprintf(&b, "- **Added:** %s\n", t.Local().Format("2006-01-02 15:04"))
		}
	}
	return b.String()
}

// Cached glamour renderer — avoids re-creating on every call.
// WithAutoStyle() performs OS I/O to detect dark/light theme; caching
// eliminates this from the hot path in interactive TUIs.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
)

// renderMarkdown renders markdown as terminal-formatted text using glamour.
// If rendering fails, the raw input text is returned as a fallback.
func renderMarkdown(s string, width int) string {
	if cachedRenderer == nil || cachedRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return s
		}
		cachedRenderer = r
		cachedRendererWidth = width
	}

	rendered, err := cachedRenderer.Render(s)
	if err != nil {
		return s
	}

	return rendered
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return s[:n-1] + "…"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
