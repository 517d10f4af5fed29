package nlp

import (
	"regexp"
	"strings"
)

// relativeStripRe covers every relative-date keyword plus bare weekday
// names (with or without "next"), so "Gym friday" titles as "Gym" even
// though a bare weekday resolves no date on its own.
var relativeStripRe = regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday` +
	`|next\s+(?:month|year)` +
	`|(?:in|after|before)\s+\d+\s+days?` +
	`|(?:next\s+)?(?:` + weekdayAlt + `))\b`)

// titleStrips are applied to the original text in a fixed order: the time
// token first (so its digits cannot be re-matched as a date), then keyword,
// month-name, ISO, and numeric date forms. Each pass is independent;
// later passes never see text an earlier pass removed.
var titleStrips = []*regexp.Regexp{
	timeSpanRe,
	relativeStripRe,
	monthDayRe,
	dayMonthRe,
	isoRe,
	numericRe,
}

// deriveTitle removes every substring the resolvers consume and collapses
// the remainder. When the whole input was date/time tokens, the trimmed
// original is the title, so an event never carries an empty title.
func deriveTitle(text string) string {
	rest := text
	for _, re := range titleStrips {
		rest = re.ReplaceAllString(rest, " ")
	}
	rest = strings.Join(strings.Fields(rest), " ")
	rest = strings.Trim(rest, " ,.")

	if rest == "" {
		return strings.TrimSpace(text)
	}
	return rest
}
