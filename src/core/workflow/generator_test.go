package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hydrorag/src/core/workflow"
)

type recordingLLM struct {
	system string
	prompt string
	answer string
	err    error
	calls  int
}

func (r *recordingLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	r.calls++
	r.system = system
	r.prompt = prompt
	return r.answer, r.err
}

func TestGenerateFallbackOnEmptyPassages(t *testing.T) {
	llm := &recordingLLM{answer: "should not be used"}
	gen := workflow.NewGenerator(llm)
	question := "what is the aridity index?"

	first, err := gen.Generate(context.Background(), question, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := gen.Generate(context.Background(), question, []workflow.Passage{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if first != second {
		t.Errorf("fallback is not deterministic: %q vs %q", first, second)
	}
	if !strings.Contains(first, question) {
		t.Errorf("fallback %q does not echo the question", first)
	}
	if first != workflow.FallbackMessage(question) {
		t.Errorf("Generate() = %q, want FallbackMessage()", first)
	}
	if llm.calls != 0 {
		t.Errorf("model called %d times on the fallback path, want 0", llm.calls)
	}
}

func TestGenerateUsesPassages(t *testing.T) {
	llm := &recordingLLM{answer: "the deficit is potential minus actual evapotranspiration"}
	gen := workflow.NewGenerator(llm)
	ps := []workflow.Passage{
		{Content: "deficit equals PET minus AET", Source: "handbook.pdf", Position: 0},
		{Content: "storage is bounded by the available water capacity", Source: "handbook.pdf", Position: 1},
	}

	answer, err := gen.Generate(context.Background(), "how is the deficit computed?", ps)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if answer != llm.answer {
		t.Errorf("Generate() = %q, want model output %q", answer, llm.answer)
	}
	if answer == workflow.FallbackMessage("how is the deficit computed?") {
		t.Error("non-empty passages produced the fallback message")
	}
	if !strings.Contains(llm.prompt, "deficit equals PET minus AET") {
		t.Error("prompt does not carry the passage content")
	}
	if !strings.Contains(llm.prompt, "how is the deficit computed?") {
		t.Error("prompt does not carry the question")
	}
}

func TestGenerateModelFailure(t *testing.T) {
	llm := &recordingLLM{err: errors.New("connection refused")}
	gen := workflow.NewGenerator(llm)

	_, err := gen.Generate(context.Background(), "q", passages(1))
	if err == nil {
		t.Fatal("Generate() error = nil, want model failure")
	}
	if !errors.Is(err, llm.err) {
		t.Errorf("error %v does not wrap the model failure", err)
	}
}

func TestFormatPassagesMarkers(t *testing.T) {
	got := workflow.FormatPassages([]workflow.Passage{
		{Content: "first", Source: "a.txt"},
		{Content: "second", Source: "b.txt"},
	})

	for _, want := range []string{"[1] (a.txt)", "first", "[2] (b.txt)", "second"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatPassages() missing %q in %q", want, got)
		}
	}
}

func TestGradeAllIdempotentOnRelevantSubset(t *testing.T) {
	j := &stubJudge{}
	grader := workflow.NewGrader(j)
	ps := passages(3)

	relevant, _, anyIrrelevant, err := grader.GradeAll(context.Background(), "q", ps)
	if err != nil {
		t.Fatalf("GradeAll() error = %v", err)
	}
	if anyIrrelevant {
		t.Fatal("anyIrrelevant = true with an all-relevant judge")
	}

	again, _, anyIrrelevant, err := grader.GradeAll(context.Background(), "q", relevant)
	if err != nil {
		t.Fatalf("GradeAll() error = %v", err)
	}
	if anyIrrelevant {
		t.Error("re-grading a relevant subset reported irrelevant passages")
	}
	if len(again) != len(relevant) {
		t.Errorf("re-grading changed the subset: %d vs %d", len(again), len(relevant))
	}
}
