package compose

import (
	"fmt"
	"strings"

	"github.com/Iam-jayant/cram-ai/internal/heuristics"
)

const questionsHeader = "# ❓ Practice Questions"

const (
	maxQuestions = 8
	minQuestions = 5
)

// questionCategories follow Bloom's taxonomy ordering; the composer rotates
// through them, binding one extracted subject per question.
var questionCategories = []struct {
	name      string
	templates []string
}{
	{"Understanding", []string{
		"What is %s and why does it matter?",
		"Explain the main ideas behind %s in your own words.",
	}},
	{"Application", []string{
		"How would you apply %s to a practical problem?",
		"Describe a scenario where %s changes the outcome.",
	}},
	{"Analysis", []string{
		"What are the key components of %s and how do they interact?",
		"How does %s compare with related approaches?",
	}},
	{"Evaluation", []string{
		"What are the strengths and limitations of %s?",
		"How would you judge whether %s was applied effectively?",
	}},
}

// genericQuestions pad short outputs and serve as the no-signal fallback.
var genericQuestions = []string{
	"What are the main concepts discussed in this material?",
	"How do these concepts relate to practical applications?",
	"What are the key differences between the approaches mentioned?",
	"Why is this topic important for exam preparation?",
	"Can you explain the underlying principles in your own words?",
}

// Questions composes practice questions from content. It never panics past
// this boundary: internal failures surface as an "Error generating
// questions:" string.
func Questions(content string, opts Options) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("Error generating questions: %v", r)
		}
	}()

	if opts.MinContentLength <= 0 {
		opts = DefaultOptions()
	}
	if tooShort(content, opts) {
		return InsufficientContentWarning
	}
	return buildQuestions(content)
}

func buildQuestions(content string) string {
	subjects := questionSubjects(content)
	if len(subjects) == 0 {
		return genericQuestionList()
	}

	var sb strings.Builder
	sb.WriteString(questionsHeader + "\n\n")

	n := 0
	for i, subject := range subjects {
		if n == maxQuestions {
			break
		}
		cat := questionCategories[i%len(questionCategories)]
		tmpl := cat.templates[(i/len(questionCategories))%len(cat.templates)]
		n++
		fmt.Fprintf(&sb, "%d. [%s] %s\n", n, cat.name, fmt.Sprintf(tmpl, subject))
	}

	// Pad thin results with generics up to the minimum.
	for _, g := range genericQuestions {
		if n >= minQuestions {
			break
		}
		n++
		fmt.Fprintf(&sb, "%d. %s\n", n, g)
	}

	return sb.String()
}

// questionSubjects merges topic headings with capitalized term phrases,
// first-seen order, duplicates removed.
func questionSubjects(content string) []string {
	var subjects []string
	seen := make(map[string]bool)
	for _, s := range append(heuristics.Topics(content), heuristics.Terms(content)...) {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		subjects = append(subjects, s)
	}
	return subjects
}

func genericQuestionList() string {
	var sb strings.Builder
	sb.WriteString(questionsHeader + "\n\n")
	for i, g := range genericQuestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, g)
	}
	return sb.String()
}
