package heuristics

import "regexp"

var topicPatterns = []*regexp.Regexp{
	// Numbered section headings: "3. Memory Hierarchies", "2) Sorting".
	regexp.MustCompile(`(?m)^\s*\d+(?:\.\d+)*[.)]\s+([A-Z][^\n.!?]{8,98})`),
	// ALL-CAPS headers on their own line.
	regexp.MustCompile(`(?m)^\s*([A-Z][A-Z0-9 \t]{9,99})\s*$`),
	// Lines opening with a common section-name keyword.
	regexp.MustCompile(`(?im)^\s*((?:introduction|overview|summary|conclusion|background|methodology|fundamentals|applications|results|discussion|analysis)[^\n.!?]{0,80})\s*$`),
}

// Topics scans a text segment for section-heading signals and returns up to
// MaxTopics candidate topic strings, 10-100 characters each.
func Topics(text string) []string {
	return collect(text, topicPatterns, 10, 100, MaxTopics)
}
