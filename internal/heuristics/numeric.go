package heuristics

import "regexp"

var numericPatterns = []*regexp.Regexp{
	// Percentages with trailing context.
	regexp.MustCompile(`\b\d+(?:\.\d+)?\s?%(?:\s[a-z][^.!?\n]{0,60})?`),
	// Numbers with common units.
	regexp.MustCompile(`\b\d+(?:[.,]\d+)?\s?(?:kg|g|mg|km|cm|mm|m|ms|ns|s|h|GB|MB|KB|TB|GHz|MHz|Hz|V|W|°C|K|bytes?|bits?)\b`),
	// Four-digit years.
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	// Simple "var = expr" formulas.
	regexp.MustCompile(`\b[A-Za-z]\w{0,10}\s*=\s*[^,;.\n]{1,40}`),
}

// Numeric scans a text segment for quantitative facts and simple formulas,
// returning up to MaxNumeric items.
func Numeric(text string) []string {
	return collect(text, numericPatterns, 2, 80, MaxNumeric)
}
