package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nlcal/internal/config"
	"nlcal/internal/store"
)

// AgendaCmd browses saved events: a plain list for scripts, an
// interactive split-pane browser on a terminal.
type AgendaCmd struct {
	All   bool `help:"Include past events." short:"a"`
	Plain bool `help:"Print a plain list instead of the interactive browser." short:"p"`
}

func (cmd *AgendaCmd) Run(globals *Globals) error {
	var entries []store.Entry
	var err error
	if cmd.All {
		entries, err = store.Load()
	} else {
		entries, err = store.Upcoming(time.Now())
	}
	if err != nil {
		return newCLIError(ExitRuntimeError, "load_failed",
			fmt.Sprintf("Failed to load events: %s", err))
	}

	if globals.JSON {
		if entries == nil {
			entries = []store.Entry{}
		}
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No events. Try: nlcal add \"Lunch tomorrow at 1pm\"")
		return nil
	}

	cfg, _ := config.Load()

	if cmd.Plain || !stdinIsTerminal() {
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%s  %-13s %-30s %s\n",
				e.Date, formatSpan(e.Time, e.EndTime, cfg), truncate(e.Title, 30), e.ID[:8])
		}
		return nil
	}

	m := newAgendaModel(entries, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("agenda TUI: %w", err)
	}

	fm := finalModel.(agendaModel)
	if fm.deleted > 0 {
		fmt.Fprintf(os.Stdout, "Removed %d event(s).\n", fm.deleted)
	}
	return nil
}

const (
	agendaLeftPaneWidth = 26 // width of the list pane
	agendaSepWidth      = 3  // " │ " separator between panes
	minSplitWidth       = 60 // minimum terminal width for horizontal split
)

// agendaModel is the Bubble Tea model for the agenda browser.
type agendaModel struct {
	entries         []store.Entry
	cfg             config.Config
	renderedContent []string // pre-cached glamour output per entry
	cursor          int
	deleted         int
	width, height   int
	message         string // transient status message
	detailViewport  viewport.Model
	focusDetail     bool
	confirmDelete   bool
	listOffset      int
}

func newAgendaModel(entries []store.Entry, cfg config.Config) agendaModel {
	vp := viewport.New(80, 10)
	// Remove "d" from half-page-down (conflicts with delete key).
	vp.KeyMap.HalfPageDown = key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "½ page down"),
	)
	vp.KeyMap.Left.SetEnabled(false)
	vp.KeyMap.Right.SetEnabled(false)

	return agendaModel{
		entries:        entries,
		cfg:            cfg,
		detailViewport: vp,
	}
}

func (m agendaModel) Init() tea.Cmd {
	return nil
}

func (m agendaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// 1. Delete confirmation takes priority over everything.
		if m.confirmDelete {
			switch msg.String() {
			case "y":
				return m.doDelete()
			default:
				m.confirmDelete = false
			}
			return m, nil
		}

		// 2. Global keys.
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			if m.width >= minSplitWidth && len(m.entries) > 0 {
				m.focusDetail = !m.focusDetail
			}
			return m, nil

		case "d", "backspace", "delete":
			if !m.focusDetail && len(m.entries) > 0 {
				m.confirmDelete = true
			}
			return m, nil
		}

		// 3. Route to focused pane (viewport handles its own keys).
		if m.focusDetail {
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}

		// 4. List navigation.
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.message = ""
				m.syncDetailContent()
				m.syncListScroll()
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.message = ""
				m.syncDetailContent()
				m.syncListScroll()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderAllContent()
		m.updateViewportSize()
		m.syncDetailContent()
		m.syncListScroll()
	}

	return m, nil
}

// doDelete removes the currently selected entry and adjusts model state.
func (m agendaModel) doDelete() (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	if m.cursor >= len(m.entries) {
		return m, nil
	}

	entry := m.entries[m.cursor]
	found, err := store.Remove(entry.ID)
	if err != nil || !found {
		return m, nil
	}

	m.entries = append(m.entries[:m.cursor], m.entries[m.cursor+1:]...)
	if m.renderedContent != nil {
		m.renderedContent = append(m.renderedContent[:m.cursor], m.renderedContent[m.cursor+1:]...)
	}
	m.deleted++
	m.message = fmt.Sprintf("Deleted: %s", truncate(entry.Title, 40))

	if len(m.entries) == 0 {
		return m, tea.Quit
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	m.syncDetailContent()
	m.syncListScroll()
	return m, nil
}

// contentRows returns the number of rows available for the content area.
func (m agendaModel) contentRows() int {
	overhead := 2 // title + help
	if m.width >= minSplitWidth {
		overhead += 2 // top border + bottom border
	}
	if m.message != "" {
		overhead++
	}
	return max(m.height-overhead, 1)
}

// rightPaneWidth returns the width available for the detail pane.
func (m agendaModel) rightPaneWidth() int {
	return max(m.width-agendaLeftPaneWidth-agendaSepWidth, 1)
}

// renderAllContent pre-renders all entries via glamour for the detail pane.
func (m *agendaModel) renderAllContent() {
	if m.width < minSplitWidth {
		m.renderedContent = nil
		return
	}
	rightW := m.rightPaneWidth()
	m.renderedContent = make([]string, len(m.entries))
	for i, e := range m.entries {
		m.renderedContent[i] = renderMarkdown(entryMarkdown(e, m.cfg), max(rightW-2, 20))
	}
}

// updateViewportSize recalculates the detail viewport dimensions.
func (m *agendaModel) updateViewportSize() {
	if m.width < minSplitWidth {
		return
	}
	rows := m.contentRows()
	vpHeight := max(rows-2, 1) // subtract header + divider in right pane
	m.detailViewport.Width = m.rightPaneWidth()
	m.detailViewport.Height = vpHeight
}

// syncDetailContent sets the viewport to the currently selected entry.
func (m *agendaModel) syncDetailContent() {
	if len(m.renderedContent) == 0 || m.cursor >= len(m.renderedContent) {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderedContent[m.cursor])
	m.detailViewport.GotoTop()
}

// syncListScroll ensures the cursor is visible within the list pane.
func (m *agendaModel) syncListScroll() {
	rows := m.contentRows()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+rows {
		m.listOffset = m.cursor - rows + 1
	}
}

// --- View styles ---

var (
	agendaTitleStyle = lipgloss.NewStyle().Bold(true)
	agendaDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	agendaHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	agendaMsgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (m agendaModel) View() string {
	var b strings.Builder

	// Title.
	b.WriteString(agendaTitleStyle.Render(
		fmt.Sprintf("Agenda (%d events)", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(agendaHelpStyle.Render("q: quit"))
		return b.String()
	}

	if m.width < minSplitWidth {
		m.viewNarrow(&b)
	} else {
		m.viewSplit(&b)
	}

	// Transient status message.
	if m.message != "" {
		b.WriteString(agendaMsgStyle.Render(m.message))
		b.WriteString("\n")
	}

	// Help bar.
	b.WriteString(agendaHelpStyle.Render(m.helpText()))

	return b.String()
}

// listLabel is the short date+time label shown in the list pane.
func (m agendaModel) listLabel(e store.Entry) string {
	label := e.Date
	if t, err := time.ParseInLocation("2006-01-02", e.Date, time.Local); err == nil {
		label = t.Format("Jan _2")
	}
	if e.Time != "" {
		label += " " + formatClock(e.Time, m.cfg)
	}
	return label
}

// viewNarrow renders a simple list without a detail pane (for terminals <60 cols).
func (m agendaModel) viewNarrow(b *strings.Builder) {
	rows := m.contentRows()
	end := min(m.listOffset+rows, len(m.entries))
	for i := m.listOffset; i < end; i++ {
		e := m.entries[i]
		title := truncate(firstLine(e.Title), max(m.width-26, 10))

		line := fmt.Sprintf("  %-16s %s", m.listLabel(e), title)
		if i == m.cursor {
			sel := "> " + line[2:]
			if m.confirmDelete {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render(sel))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Render(sel))
			}
		} else {
			b.WriteString(agendaDimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	// Pad remaining rows so the alt screen fills.
	for i := end - m.listOffset; i < rows; i++ {
		b.WriteString("\n")
	}
}

// viewSplit renders the horizontal split layout: list | separator | detail.
func (m agendaModel) viewSplit(b *strings.Builder) {
	rows := m.contentRows()
	rightW := m.rightPaneWidth()

	// Top border: ─────┬─────
	b.WriteString(agendaDimStyle.Render(
		strings.Repeat("─", agendaLeftPaneWidth) + "─┬─" + strings.Repeat("─", rightW)))
	b.WriteString("\n")

	// Build left pane (list items padded to leftPaneWidth).
	leftStyle := lipgloss.NewStyle().Width(agendaLeftPaneWidth)
	leftLines := make([]string, rows)
	for i := range rows {
		idx := m.listOffset + i
		if idx < len(m.entries) {
			leftLines[i] = m.renderListItem(idx, leftStyle)
		} else {
			leftLines[i] = leftStyle.Render("")
		}
	}

	// Build separator column.
	sepColor := lipgloss.Color("240")
	if m.focusDetail {
		sepColor = lipgloss.Color("212")
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render(" │ ")

	// Right pane: fixed header + divider + viewport lines.
	e := m.entries[m.cursor]
	idShort := e.ID
	if len(idShort) > 8 {
		idShort = idShort[:8]
	}
	header := agendaDimStyle.Render(
		fmt.Sprintf("%s · %s · %s", formatDate(e.Date), formatSpan(e.Time, e.EndTime, m.cfg), idShort))
	divider := agendaDimStyle.Render(strings.Repeat("─", rightW))

	vpLines := strings.Split(m.detailViewport.View(), "\n")

	// Compose rows: left | sep | right.
	for i := range rows {
		b.WriteString(leftLines[i])
		b.WriteString(sep)
		switch i {
		case 0:
			b.WriteString(header)
		case 1:
			b.WriteString(divider)
		default:
			vpIdx := i - 2
			if vpIdx < len(vpLines) {
				b.WriteString(vpLines[vpIdx])
			}
		}
		b.WriteString("\n")
	}

	// Bottom border: ─────┴─────
	b.WriteString(agendaDimStyle.Render(
		strings.Repeat("─", agendaLeftPaneWidth) + "─┴─" + strings.Repeat("─", rightW)))
	b.WriteString("\n")
}

// renderListItem renders a single list entry for the left pane.
func (m agendaModel) renderListItem(idx int, baseStyle lipgloss.Style) string {
	content := m.listLabel(m.entries[idx])

	if idx == m.cursor {
		color := lipgloss.Color("212")
		if m.confirmDelete {
			color = lipgloss.Color("214")
		}
		return baseStyle.Foreground(color).Bold(true).Render("> " + content)
	}
	return baseStyle.Foreground(lipgloss.Color("240")).Render("  " + content)
}

func (m agendaModel) helpText() string {
	if m.confirmDelete {
		return "y: confirm   n: cancel"
	}
	if m.width < minSplitWidth {
		return "↑↓: navigate   d: delete   q: quit"
	}
	if m.focusDetail {
		return "↑↓: scroll   tab: list   d: delete   q: quit"
	}
	return "↑↓: navigate   tab: detail   d: delete   q: quit"
}
