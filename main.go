package main

import (
	"errors"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
)

// Globals holds flags shared across all commands.
type Globals struct {
	JSON bool `help:"Output JSON for LLM/script consumption." short:"j"`
}

// CLI is the root command structure for nlcal.
type CLI struct {
	Globals

	Parse  ParseCmd  `cmd:"" help:"Parse natural-language text into a calendar event without saving."`
	Add    AddCmd    `cmd:"" help:"Parse text and save the event."`
	Tui    TuiCmd    `cmd:"" help:"Capture events interactively with a live parse preview."`
	Pick   PickCmd   `cmd:"" help:"Select a date range on a month grid, optionally pre-seeded from text."`
	Agenda AgendaCmd `cmd:"" help:"Browse saved events."`
	Export ExportCmd `cmd:"" help:"Write saved events as an iCalendar file."`
	Rm     RmCmd     `cmd:"" help:"Remove saved events."`
	Config ConfigCmd `cmd:"" help:"Show or change display settings."`
	Guide  GuideCmd  `cmd:"" help:"Print the usage guide — the full input grammar with examples."`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("nlcal"),
		kong.Description("Turn natural language like \"Lunch with Sam tomorrow at 1pm\" into calendar events."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		// Ctrl+C / Ctrl+D — exit silently.
		if isUserAbort(err) {
			os.Exit(0)
		}

		var cliErr *CLIError
		if ok := asCLIError(err, &cliErr); ok {
			if cli.JSON {
				printErrorJSON(cliErr.Message, cliErr.Code)
			} else {
				printErrorHuman(cliErr.Message)
			}
			os.Exit(cliErr.ExitCode)
		}
		if cli.JSON {
			printErrorJSON(err.Error(), "runtime_error")
		} else {
			printErrorHuman(err.Error())
		}
		os.Exit(1)
	}
}

// isUserAbort returns true for errors caused by the user
// quitting an interactive prompt (Ctrl+C, Ctrl+D).
func isUserAbort(err error) bool {
	if errors.Is(err, huh.ErrUserAborted) {
		return true
	}
	// huh wraps bubbletea errors as "huh: <err>"
	if strings.Contains(err.Error(), "user aborted") {
		return true
	}
	return false
}
