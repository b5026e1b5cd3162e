// Package cleaner normalizes raw PDF-extracted text into prose suitable for
// chunking and heuristic analysis. Clean is a pure function and idempotent.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	pageNumberLine = regexp.MustCompile(`^\s*\d+\s*$`)
	pageHeaderLine = regexp.MustCompile(`(?i)^\s*page\s+\d+(\s+of\s+\d+)?\s*$`)
)

// Lines shorter than this with no sentence-terminal punctuation are treated
// as header/footer noise and dropped.
const minLineChars = 10

// Clean normalizes whitespace, strips page-number and "Page N" artifact
// lines, drops non-substantial short lines, and collapses runs of three or
// more blank lines to a single blank line. Empty input yields empty output.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	rawLines := strings.Split(text, "\n")
	kept := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		switch {
		case line == "":
			kept = append(kept, "")
		case pageNumberLine.MatchString(line) || pageHeaderLine.MatchString(line):
			// Page artifacts vanish without leaving a blank.
		case len(line) < minLineChars && !strings.ContainsAny(line, ".!?"):
			// Too short to be prose and not a sentence fragment.
		default:
			kept = append(kept, line)
		}
	}

	out := make([]string, 0, len(kept))
	blanks := 0
	for _, line := range kept {
		if line == "" {
			blanks++
			continue
		}
		if blanks > 0 && len(out) > 0 {
			if blanks >= 3 {
				blanks = 1
			}
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
		}
		blanks = 0
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
