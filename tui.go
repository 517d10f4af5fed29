package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nlcal/internal/config"
	"nlcal/internal/nlp"
	"nlcal/internal/store"
)

// TuiCmd opens the live capture view: the input is re-parsed on every
// keystroke and the resulting event is shown underneath.
type TuiCmd struct{}

func (cmd *TuiCmd) Run(globals *Globals) error {
	if globals.JSON {
		return newCLIError(ExitInvalidInput, "no_tty",
			"The capture TUI has no JSON mode. Use \"nlcal add --json\" instead.")
	}

	cfg, _ := config.Load()

	m := newCaptureModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("capture TUI: %w", err)
	}

	fm := finalModel.(captureModel)
	if fm.saved > 0 {
		fmt.Fprintf(os.Stdout, "Saved %d event(s).\n", fm.saved)
	}
	return nil
}

// captureModel is the Bubble Tea model for live event capture.
type captureModel struct {
	input   textinput.Model
	cfg     config.Config
	result  nlp.Result
	saved   int
	message string // transient status message
	width   int
	err     error
}

func newCaptureModel(cfg config.Config) captureModel {
	ti := textinput.New()
	ti.Placeholder = "Lunch with Sam tomorrow at 1pm"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 200

	return captureModel{input: ti, cfg: cfg}
}

func (m captureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m captureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if len(m.result.Events) == 0 {
				return m, nil
			}
			entry, err := store.Append(m.result.Events[0])
			if err != nil {
				m.err = err
				return m, nil
			}
			m.saved++
			m.message = fmt.Sprintf("Saved %q (%s)", entry.Title, entry.ID[:8])
			m.input.SetValue("")
			m.result = nlp.Result{}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 20)
	}

	// Every other key goes to the input; re-parse whatever it now holds.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.result = nlp.Parse(m.input.Value())
	m.message = ""
	return m, cmd
}

var (
	captureTitleStyle = lipgloss.NewStyle().Bold(true)
	captureHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	captureHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	captureMsgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	captureErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m captureModel) View() string {
	var b strings.Builder

	b.WriteString(captureTitleStyle.Render("nlcal — capture"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(captureErrStyle.Render("Save failed: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.result.Events) > 0:
		b.WriteString(renderEventCard(m.result.Events[0], m.cfg))
		b.WriteString("\n")
	case m.result.Warning != "":
		b.WriteString(warningStyle.Render(m.result.Warning))
		b.WriteString("\n")
	default:
		b.WriteString(captureHintStyle.Render("Type an event; the parse appears here as you go."))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(captureMsgStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(captureHelpStyle.Render("enter: save   esc: quit"))
	return b.String()
}
