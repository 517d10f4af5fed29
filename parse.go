package main

import (
	"encoding/json"
	"fmt"
	"os"

	"nlcal/internal/config"
	"nlcal/internal/nlp"
)

// ParseCmd runs the parser and prints the result without saving anything.
type ParseCmd struct {
	TextInput `embed:""`
}

func (cmd *ParseCmd) Run(globals *Globals) error {
	text, err := cmd.Resolve()
	if err != nil {
		return err
	}

	result := nlp.Parse(text)

	// JSON mode emits the raw result, warning and all: downstream
	// consumers decide what an empty event list means to them.
	if globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	cfg, _ := config.Load()
	if len(result.Events) == 0 {
		if result.Warning != "" {
			fmt.Fprintln(os.Stdout, warningStyle.Render(result.Warning))
		} else {
			fmt.Fprintln(os.Stdout, "Nothing to parse.")
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, renderEventCard(result.Events[0], cfg))
	return nil
}
