package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"nlcal/internal/config"
	"nlcal/internal/nlp"
	"nlcal/internal/store"
)

// AddCmd parses text and saves the event to the local store.
type AddCmd struct {
	TextInput `embed:""`
	DryRun    bool `help:"Preview the parsed event without saving." short:"n"`
	Yes       bool `help:"Skip the confirmation prompt." short:"y"`
}

func (cmd *AddCmd) Run(globals *Globals) error {
	// 1. Resolve input; fall back to an interactive prompt on a terminal.
	text, err := cmd.Resolve()
	if err != nil {
		var cliErr *CLIError
		if asCLIError(err, &cliErr) && cliErr.Code == "empty_input" &&
			!globals.JSON && stdinIsTerminal() {
			text, err = promptText()
		}
		if err != nil {
			return err
		}
	}

	// 2. Parse.
	result := nlp.Parse(text)
	if len(result.Events) == 0 {
		if result.Warning != "" {
			return newCLIError(ExitInvalidInput, "no_date", result.Warning)
		}
		return newCLIError(ExitInvalidInput, "empty_input", "Nothing to parse.")
	}
	ev := result.Events[0]
	cfg, _ := config.Load()

	// 3. Dry run — preview only.
	if cmd.DryRun {
		return cmd.dryRun(globals, ev, cfg)
	}

	// 4. Confirm on a terminal unless told not to.
	if !cmd.Yes && !globals.JSON && stdinIsTerminal() {
		fmt.Fprintln(os.Stdout, renderEventCard(ev, cfg))
		var save bool
		if err := runField(
			huh.NewConfirm().
				Title("Save this event?").
				Affirmative("Save").
				Negative("Discard").
				Value(&save),
		); err != nil {
			return err
		}
		if !save {
			fmt.Fprintln(os.Stdout, "Not saved.")
			return nil
		}
	}

	// 5. Save.
	entry, err := store.Append(ev)
	if err != nil {
		return newCLIError(ExitRuntimeError, "save_failed",
			fmt.Sprintf("Failed to save event: %s", err))
	}

	// 6. Print confirmation.
	if globals.JSON {
		b, _ := json.Marshal(map[string]any{
			"status": "saved",
			"id":     entry.ID,
			"event":  ev,
		})
		fmt.Fprintln(os.Stdout, string(b))
	} else {
		fmt.Fprintf(os.Stdout, "Saved %q on %s (%s).\n",
			ev.Title, formatDate(ev.Date), entry.ID[:8])
	}
	return nil
}

func (cmd *AddCmd) dryRun(globals *Globals, ev nlp.Event, cfg config.Config) error {
	if globals.JSON {
		b, _ := json.Marshal(map[string]any{
			"status": "dry_run",
			"event":  ev,
		})
		fmt.Fprintln(os.Stdout, string(b))
	} else {
		fmt.Fprintln(os.Stdout, "[dry-run] Event preview:")
		fmt.Fprintln(os.Stdout, renderEventCard(ev, cfg))
	}
	return nil
}

// promptText asks for event text interactively.
func promptText() (string, error) {
	var text string
	err := runField(
		huh.NewInput().
			Title("Describe the event:").
			Placeholder("Lunch with Sam tomorrow at 1pm").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("text cannot be empty")
				}
				return nil
			}).
			Value(&text),
	)
	return text, err
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}

// runField wraps a single huh field in a form that supports
// Ctrl+C and Ctrl+D for quitting, with bottom margin styling.
func runField(field huh.Field) error {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"))

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.MarginBottom(1)
	t.Blurred.Base = t.Blurred.Base.MarginBottom(1)

	return huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithKeyMap(km).
		WithTheme(t).
		Run()
}
