package heuristics

import (
	"regexp"
	"strings"
)

var termPhraseRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)

// termStopwords excludes demonstratives and other sentence-opening words that
// capitalize without naming a topic.
var termStopwords = map[string]bool{
	"the": true, "this": true, "that": true, "these": true, "those": true,
	"there": true, "it": true, "if": true, "in": true, "on": true, "at": true,
	"for": true, "with": true, "when": true, "what": true, "how": true,
	"why": true, "which": true, "such": true, "some": true, "many": true,
}

// Terms scans a text segment for capitalized multi-word phrases usable as
// question subjects, returning up to MaxTerms.
func Terms(text string) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, m := range termPhraseRe.FindAllStringSubmatch(text, -1) {
		phrase := m[1]
		first := strings.ToLower(strings.Fields(phrase)[0])
		if termStopwords[first] {
			continue
		}
		items = append(items, phrase)
	}
	return finish(items, 5, 60, MaxTerms)
}
