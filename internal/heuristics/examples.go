package heuristics

import "regexp"

var examplePatterns = []*regexp.Regexp{
	// "For example, ..." / "e.g. ..." openings.
	regexp.MustCompile(`(?i)(?:for example|for instance|e\.g\.)[,:]?\s+([^.!?\n]{10,150})`),
	// Labeled examples: "Example: ...".
	regexp.MustCompile(`(?im)\bexamples?\s*:\s*([^\n]{10,150})`),
	// "X uses Y" constructions.
	regexp.MustCompile(`\b([A-Z][A-Za-z]*(?:\s+[a-z]+){0,3}\s+uses\s+[^.!?\n]{5,100})`),
	// Enumerations introduced by "such as" or "including".
	regexp.MustCompile(`(?i)(?:such as|including)\s+([^.!?\n]{10,120})`),
}

// Examples scans a text segment for illustrative material and returns up to
// MaxExamples items.
func Examples(text string) []string {
	return collect(text, examplePatterns, 10, 150, MaxExamples)
}
