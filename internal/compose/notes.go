package compose

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Iam-jayant/cram-ai/internal/heuristics"
)

const notesHeader = "# 📝 Study Notes"

// fallbackMaxSentences is the number of top-scoring sentences kept when the
// structured extractors come up empty.
const fallbackMaxSentences = 5

// Notes composes study notes from content. It never panics past this
// boundary: internal failures surface as an "Error generating notes:" string.
func Notes(content string, opts Options) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("Error generating notes: %v", r)
		}
	}()

	if opts.MinContentLength <= 0 {
		opts = DefaultOptions()
	}
	if tooShort(content, opts) {
		return InsufficientContentWarning
	}
	return buildNotes(content)
}

func buildNotes(content string) string {
	topics := heuristics.Topics(content)
	points := heuristics.KeyPoints(content)
	examples := heuristics.Examples(content)
	defs := heuristics.Definitions(content)
	figures := heuristics.Numeric(content)

	var sb strings.Builder
	sb.WriteString(notesHeader + "\n")

	bullets := 0
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n## " + title + "\n")
		for _, it := range items {
			sb.WriteString("• " + it + "\n")
			bullets++
		}
	}

	section("Main Topics", topics)
	section("Key Points", points)
	section("Examples", examples)
	if len(defs) > 0 {
		sb.WriteString("\n## Definitions\n")
		for _, d := range defs {
			fmt.Fprintf(&sb, "• **%s**: %s\n", d.Term, d.Text)
			bullets++
		}
	}
	section("Facts & Figures", figures)

	// A skeleton with fewer than 3 bullets is not worth showing; fall back
	// to the informative-sentence selector.
	if bullets < 3 {
		return fallbackNotes(content)
	}
	return sb.String()
}

// informativeKeywords score sentences for the naive fallback selector.
var informativeKeywords = []string{
	"important", "key", "significant", "main", "essential", "fundamental",
	"critical", "primary", "major", "concept", "define", "result",
	"because", "therefore", "means", "principle",
}

var fallbackSentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?]`)

// fallbackNotes selects the highest-scoring sentences as bullets when the
// structured extractors produced too little.
func fallbackNotes(content string) string {
	sents := fallbackSentenceRe.FindAllString(content, -1)

	type scored struct {
		text  string
		score int
		pos   int
	}
	var candidates []scored
	for i, s := range sents {
		s = strings.TrimSpace(s)
		if len(s) < 20 {
			continue
		}
		score := 0
		lower := strings.ToLower(s)
		for _, kw := range informativeKeywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		candidates = append(candidates, scored{text: s, score: score, pos: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > fallbackMaxSentences {
		candidates = candidates[:fallbackMaxSentences]
	}
	// Present in document order regardless of score rank.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].pos < candidates[j].pos })

	var sb strings.Builder
	sb.WriteString(notesHeader + "\n\n## Summary\n")
	if len(candidates) == 0 {
		// No sentence structure at all: bullet the opening words instead.
		words := strings.Fields(content)
		if len(words) > 30 {
			words = words[:30]
		}
		sb.WriteString("• " + strings.Join(words, " ") + "\n")
		return sb.String()
	}
	for _, c := range candidates {
		sb.WriteString("• " + c.text + "\n")
	}
	return sb.String()
}
