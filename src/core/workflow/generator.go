package workflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

const GenerateSystemTmpl = `
You are an assistant answering questions strictly from the supplied document passages. \
Ground every claim in the passages and prefer citing the passage a claim comes from. \
If the passages only partially cover the question, answer the covered part and say what is missing. \
Do not use knowledge beyond the passages.
`

const GeneratePromptTmpl = `
Passages:
{{.Context}}

Question: {{.Question}}

Answer the question using only the passages above.
`

// fallbackTemplate is the deterministic reply for the empty-passage case.
// It is rendered without any model call so it stays available when the
// model path is degraded.
const fallbackTemplate = "No relevant material was found in the uploaded documents to answer: %q. " +
	"Try rephrasing the question or uploading documents that cover this topic."

// FallbackMessage returns the canned no-relevant-passages reply for a question
func FallbackMessage(question string) string {
	return fmt.Sprintf(fallbackTemplate, question)
}

// generateData holds the data needed for answer template execution
type generateData struct {
	Question string
	Context  string
}

// Generator produces an answer from a question and a set of passages
type Generator struct {
	llm LLM
}

func NewGenerator(llm LLM) *Generator {
	return &Generator{llm: llm}
}

// Generate answers the question from the passages. An empty passage set
// yields the deterministic fallback message; no model call is issued.
func (g *Generator) Generate(ctx context.Context, question string, passages []Passage) (string, error) {
	if len(passages) == 0 {
		return FallbackMessage(question), nil
	}

	data := generateData{
		Question: question,
		Context:  FormatPassages(passages),
	}

	var systemBuf, promptBuf bytes.Buffer
	sysT := template.Must(template.New("system").Parse(GenerateSystemTmpl))
	if err := sysT.Execute(&systemBuf, data); err != nil {
		return "", fmt.Errorf("failed to execute system template: %w", err)
	}
	prmptT := template.Must(template.New("prompt").Parse(GeneratePromptTmpl))
	if err := prmptT.Execute(&promptBuf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	answer, err := g.llm.Generate(ctx, systemBuf.String(), promptBuf.String())
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, nil
}

// FormatPassages concatenates passages with source markers for citation
func FormatPassages(passages []Passage) string {
	var b strings.Builder
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] (%s)\n%s\n\n", i+1, p.Source, p.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
