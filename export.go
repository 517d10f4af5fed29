package main

import (
	"fmt"
	"os"

	"nlcal/internal/ics"
	"nlcal/internal/store"
)

// ExportCmd writes saved events as an iCalendar document.
type ExportCmd struct {
	Out string `help:"Write to a file instead of stdout." short:"o" type:"path"`
}

func (cmd *ExportCmd) Run(globals *Globals) error {
	entries, err := store.Load()
	if err != nil {
		return newCLIError(ExitRuntimeError, "load_failed",
			fmt.Sprintf("Failed to load events: %s", err))
	}

	payload, err := ics.Export(entries)
	if err != nil {
		return newCLIError(ExitRuntimeError, "export_failed",
			fmt.Sprintf("Failed to build calendar: %s", err))
	}

	if cmd.Out == "" {
		fmt.Fprint(os.Stdout, payload)
		return nil
	}

	if err := os.WriteFile(cmd.Out, []byte(payload), 0o600); err != nil {
		return newCLIError(ExitRuntimeError, "write_failed",
			fmt.Sprintf("Failed to write %q: %s", cmd.Out, err))
	}

	msg := fmt.Sprintf("Exported %d event(s) to %s.", len(entries), cmd.Out)
	if globals.JSON {
		printSuccessJSON(msg)
	} else {
		printSuccessHuman(msg)
	}
	return nil
}
