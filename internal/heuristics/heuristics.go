// Package heuristics contains the pattern-based scanners that mine a text
// segment for study-relevant signals: topics, key points, examples,
// definitions, numeric data, and question-worthy terms.
//
// Every scanner follows the same policy: collect matches across its patterns,
// strip and length-filter them, deduplicate preserving first-seen order, and
// truncate to a fixed cap. Scanners never fail; no matches means an empty
// slice.
package heuristics

import (
	"regexp"
	"strings"
)

// Per-extractor result caps.
const (
	MaxTopics      = 8
	MaxKeyPoints   = 10
	MaxExamples    = 5
	MaxDefinitions = 3
	MaxNumeric     = 3
	MaxTerms       = 7
)

// collect runs each pattern over text and gathers candidates. Patterns with a
// capture group contribute group 1, otherwise the whole match. Candidates are
// trimmed, length-filtered, deduplicated first-seen, and capped.
func collect(text string, patterns []*regexp.Regexp, minLen, maxLen, cap int) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := m[0]
			if len(m) > 1 && m[1] != "" {
				candidate = m[1]
			}
			items = append(items, candidate)
		}
	}
	return finish(items, minLen, maxLen, cap)
}

// finish applies the shared trim/filter/dedupe/cap policy to raw candidates.
func finish(items []string, minLen, maxLen, cap int) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(strings.Trim(strings.TrimSpace(it), ":;,"))
		if len(it) < minLen || len(it) > maxLen {
			continue
		}
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == cap {
			break
		}
	}
	return out
}

// sentenceRe matches individual sentences for the scanners that work at
// sentence granularity.
var sentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?]`)

func sentences(text string) []string {
	return sentenceRe.FindAllString(text, -1)
}
