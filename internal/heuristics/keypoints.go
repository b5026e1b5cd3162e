package heuristics

import (
	"regexp"
	"strings"
)

var keyPointPatterns = []*regexp.Regexp{
	// Bullet-glyph prefixed lines.
	regexp.MustCompile(`(?m)^\s*[•\-*‣·]\s+(.{16,200})$`),
	// Explicit emphasis prefixes.
	regexp.MustCompile(`(?im)\b(?:key|important|note|remember|essential)\s*:\s*([^\n]{16,200})`),
}

// actionVerbs flag sentences that state something actionable or consequential.
var actionVerbs = []string{
	"improve", "enhance", "reduce", "increase", "enable", "ensure",
	"optimize", "prevent", "achieve", "require", "determine", "provide",
}

// KeyPoints scans a text segment for emphasized or actionable statements and
// returns up to MaxKeyPoints items longer than 15 characters.
func KeyPoints(text string) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, re := range keyPointPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			items = append(items, m[1])
		}
	}
	for _, s := range sentences(text) {
		s = strings.TrimLeft(s, "•-*‣· \t")
		lower := strings.ToLower(s)
		for _, verb := range actionVerbs {
			if strings.Contains(lower, verb) {
				items = append(items, s)
				break
			}
		}
	}
	return finish(items, 16, 250, MaxKeyPoints)
}
