package parse

import (
	"regexp"
	"strings"
)

var (
	lineBreakRe  = regexp.MustCompile(`\r\n|\r|\n`)
	stepLabelRe  = regexp.MustCompile(`(?i)^step\s*\d+[.:)]?$`)
	innerSpaceRe = regexp.MustCompile(`[ \t]+`)
)

// Paragraphs splits free-text instructions into display paragraphs.
//
// Line breaks separate paragraphs, blank lines and bare "STEP n" labels are
// dropped, and runs of spaces are collapsed. The recipe text itself is not
// modified; this only shapes how it is shown.
func Paragraphs(raw string) []string {
	lines := lineBreakRe.Split(raw, -1)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(innerSpaceRe.ReplaceAllString(line, " "))
		if line == "" || stepLabelRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
