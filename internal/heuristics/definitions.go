package heuristics

import (
	"regexp"
	"strings"
)

// Definition pairs a term with its in-text explanation.
type Definition struct {
	Term string
	Text string
}

var definitionPatterns = []*regexp.Regexp{
	// "X is/are/means/refers to Y."
	regexp.MustCompile(`(?m)\b([A-Z][A-Za-z0-9 -]{1,48}?)\s+(?:is|are|means|refers to)\s+(?:defined as\s+)?((?:a|an|the)?\s*[a-z][^.!?\n]{9,197})`),
	// "Term: definition" colon form at line start.
	regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9 -]{1,48}):\s+(\S[^\n]{8,197})$`),
}

// Definitions scans a text segment for term/definition pairs and returns up
// to MaxDefinitions. Terms stay under 50 characters, definitions under 200.
func Definitions(text string) []Definition {
	if text == "" {
		return nil
	}
	var out []Definition
	seen := make(map[string]bool)
	for _, re := range definitionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			term := strings.TrimSpace(m[1])
			def := strings.TrimSpace(m[2])
			if len(term) == 0 || len(term) >= 50 || len(def) < 10 || len(def) >= 200 {
				continue
			}
			key := strings.ToLower(term)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Definition{Term: term, Text: def})
			if len(out) == MaxDefinitions {
				return out
			}
		}
	}
	return out
}
