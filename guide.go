package main

import (
	_ "embed"
	"fmt"
)

//go:embed nlcal.guide.md
var guideContent string

// GuideCmd prints the usage guide to stdout.
type GuideCmd struct{}

func (cmd *GuideCmd) Run(globals *Globals) error {
	fmt.Print(guideContent)
	return nil
}
