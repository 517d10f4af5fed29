package main

import (
	"encoding/json"
	"fmt"
	"os"

	"nlcal/internal/config"
)

// ConfigCmd shows or updates display settings.
type ConfigCmd struct {
	WeekStart string `help:"Set the first day of the week (mon or sun)."`
	Clock     int    `help:"Set time display (12 or 24)."`
}

func (cmd *ConfigCmd) Run(globals *Globals) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.WeekStart == "" && cmd.Clock == 0 {
		if globals.JSON {
			return json.NewEncoder(os.Stdout).Encode(cfg)
		}
		fmt.Fprintf(os.Stdout, "week_start: %s\nclock: %d\n", cfg.WeekStart, cfg.Clock)
		return nil
	}

	if cmd.WeekStart != "" {
		cfg.WeekStart = cmd.WeekStart
	}
	if cmd.Clock != 0 {
		cfg.Clock = cmd.Clock
	}

	if err := config.Save(cfg); err != nil {
		return newCLIError(ExitInvalidInput, "invalid_config", err.Error())
	}

	msg := "Settings saved."
	if globals.JSON {
		printSuccessJSON(msg)
	} else {
		printSuccessHuman(msg)
	}
	return nil
}
