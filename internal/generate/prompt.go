package generate

import (
	"os"
	"strings"
)

// PromptTemplate is a generation prompt with a {content} placeholder.
type PromptTemplate string

// DefaultNotesPrompt is the built-in template used when no override is
// configured.
const DefaultNotesPrompt PromptTemplate = `Extract the following content into 3-5 bullet-point notes for exam revision. Focus only on high-yield, important information:

{content}

Please format your response as clear bullet points, focusing on:
- Key concepts and definitions
- Important formulas or principles
- Critical facts that are likely to be tested
- Practical applications or examples

Keep each bullet point concise but comprehensive.`

// DefaultQuestionsPrompt is the built-in template used when no override is
// configured.
const DefaultQuestionsPrompt PromptTemplate = `Based on the following content, generate 3-5 open-ended conceptual questions that would help a student prepare for a theory exam:

{content}

Create questions that:
- Test deep understanding rather than memorization
- Cover the most important concepts from the content
- Are suitable for theory exam preparation
- Encourage critical thinking and analysis
- Range from basic understanding to application level

Format each question as a numbered list (1., 2., 3., etc.)`

// Render substitutes the content into the template.
func (t PromptTemplate) Render(content string) string {
	return strings.ReplaceAll(string(t), "{content}", content)
}

// LoadPrompt resolves a template with an explicit two-tier strategy: read the
// file at path if given and readable, otherwise use the built-in fallback.
func LoadPrompt(path string, fallback PromptTemplate) PromptTemplate {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return fallback
	}
	return PromptTemplate(data)
}
