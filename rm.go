package main

import (
	"fmt"

	"nlcal/internal/store"
)

// RmCmd removes saved events.
type RmCmd struct {
	ID  string `arg:"" optional:"" help:"Event ID (or unique prefix) to remove."`
	All bool   `help:"Remove every saved event."`
}

func (cmd *RmCmd) Run(globals *Globals) error {
	if cmd.All {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		msg := "All events removed."
		if globals.JSON {
			printSuccessJSON(msg)
		} else {
			printSuccessHuman(msg)
		}
		return nil
	}

	if cmd.ID == "" {
		return newCLIError(ExitInvalidInput, "missing_id",
			"Pass an event ID (see \"nlcal agenda\") or --all.")
	}

	found, err := store.Remove(cmd.ID)
	if err != nil {
		return newCLIError(ExitRuntimeError, "remove_failed",
			fmt.Sprintf("Failed to remove event: %s", err))
	}
	if !found {
		return newCLIError(ExitInvalidInput, "not_found",
			fmt.Sprintf("No event matches %q.", cmd.ID))
	}

	msg := "Event removed."
	if globals.JSON {
		printSuccessJSON(msg)
	} else {
		printSuccessHuman(msg)
	}
	return nil
}
