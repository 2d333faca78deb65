package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hydrorag/src/core/judge"
	"hydrorag/src/core/workflow"
)

type stubRetriever struct {
	passages []workflow.Passage
	err      error
	calls    int
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) ([]workflow.Passage, error) {
	s.calls++
	return s.passages, s.err
}

type stubJudge struct {
	// grades is consumed one entry per GradeDocument call
	grades   []string
	gradeErr error

	// grounded is consumed one entry per CheckGrounding call; the last
	// entry repeats once exhausted
	grounded  []bool
	groundErr error

	addressed bool
	assessErr error

	gradeCalls  int
	groundCalls int
	assessCalls int
}

func (s *stubJudge) GradeDocument(ctx context.Context, question, passage string) (judge.GradeResult, error) {
	idx := s.gradeCalls
	s.gradeCalls++
	if s.gradeErr != nil {
		return judge.GradeResult{}, s.gradeErr
	}
	score := judge.ScoreRelevant
	if idx < len(s.grades) {
		score = s.grades[idx]
	}
	return judge.GradeResult{Score: score}, nil
}

func (s *stubJudge) CheckGrounding(ctx context.Context, answer, context string) (judge.GroundingResult, error) {
	idx := s.groundCalls
	s.groundCalls++
	if s.groundErr != nil {
		return judge.GroundingResult{}, s.groundErr
	}
	grounded := true
	if len(s.grounded) > 0 {
		if idx >= len(s.grounded) {
			idx = len(s.grounded) - 1
		}
		grounded = s.grounded[idx]
	}
	return judge.GroundingResult{Grounded: grounded, Confidence: 0.9}, nil
}

func (s *stubJudge) AssessAnswer(ctx context.Context, question, answer string) (judge.AnswerAssessment, error) {
	s.assessCalls++
	if s.assessErr != nil {
		return judge.AnswerAssessment{}, s.assessErr
	}
	return judge.AnswerAssessment{Addressed: s.addressed, RelevanceScore: 0.8}, nil
}

type stubLLM struct {
	calls int
}

func (s *stubLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	s.calls++
	return fmt.Sprintf("generated answer %d", s.calls), nil
}

func passages(n int) []workflow.Passage {
	out := make([]workflow.Passage, n)
	for i := range out {
		out[i] = workflow.Passage{
			Content:  fmt.Sprintf("passage content %d", i),
			Source:   "doc.txt",
			Position: i,
		}
	}
	return out
}

func TestProcessQuestionEmptyQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
	}{
		{name: "empty string", question: ""},
		{name: "whitespace only", question: "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever := &stubRetriever{passages: passages(2)}
			svc := workflow.NewService(retriever, &stubJudge{addressed: true}, &stubLLM{})

			_, err := svc.ProcessQuestion(context.Background(), tt.question)

			var validationErr *workflow.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("ProcessQuestion(%q) error = %v, want ValidationError", tt.question, err)
			}
			if retriever.calls != 0 {
				t.Errorf("retriever called %d times before validation, want 0", retriever.calls)
			}
		})
	}
}

func TestProcessQuestionRetrievalFailure(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index unavailable")}
	svc := workflow.NewService(retriever, &stubJudge{}, &stubLLM{})

	_, err := svc.ProcessQuestion(context.Background(), "what is the water balance?")

	var retrievalErr *workflow.RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("error = %v, want RetrievalError", err)
	}
	if !errors.Is(err, retriever.err) {
		t.Errorf("RetrievalError does not wrap the retriever failure")
	}
}

func TestProcessQuestionAccepted(t *testing.T) {
	retriever := &stubRetriever{passages: passages(3)}
	j := &stubJudge{addressed: true}
	llm := &stubLLM{}
	svc := workflow.NewService(retriever, j, llm)

	state, err := svc.ProcessQuestion(context.Background(), "what is the water balance?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if state.Verdict != workflow.VerdictAnswersQuestion {
		t.Errorf("Verdict = %q, want %q", state.Verdict, workflow.VerdictAnswersQuestion)
	}
	if state.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1", state.RetryCount)
	}
	if state.RetryLimitReached {
		t.Error("RetryLimitReached = true on first-attempt success")
	}
	if state.SearchMethod != workflow.SearchMethodDocuments {
		t.Errorf("SearchMethod = %q, want %q", state.SearchMethod, workflow.SearchMethodDocuments)
	}
	if state.OnlineSearch {
		t.Error("OnlineSearch = true with all passages relevant")
	}
	if len(state.Documents) != 3 {
		t.Errorf("Documents = %d passages, want 3", len(state.Documents))
	}
	if len(state.DocumentEvaluations) != 3 {
		t.Errorf("DocumentEvaluations = %d entries, want 3", len(state.DocumentEvaluations))
	}
	if state.Solution == "" {
		t.Error("Solution is empty")
	}
	if state.DocumentRelevanceScore == nil || !state.DocumentRelevanceScore.Grounded {
		t.Error("DocumentRelevanceScore not recorded as grounded")
	}
	if state.QuestionRelevanceScore == nil || !state.QuestionRelevanceScore.Addressed {
		t.Error("QuestionRelevanceScore not recorded as addressed")
	}
}

func TestProcessQuestionHallucinationRetryThenSuccess(t *testing.T) {
	retriever := &stubRetriever{passages: passages(2)}
	j := &stubJudge{grounded: []bool{false, true}, addressed: true}
	llm := &stubLLM{}
	svc := workflow.NewService(retriever, j, llm)

	state, err := svc.ProcessQuestion(context.Background(), "how is the deficit computed?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if state.RetryCount != 2 {
		t.Errorf("RetryCount = %d, want 2", state.RetryCount)
	}
	if state.Verdict != workflow.VerdictAnswersQuestion {
		t.Errorf("Verdict = %q, want %q", state.Verdict, workflow.VerdictAnswersQuestion)
	}
	if state.RetryLimitReached {
		t.Error("RetryLimitReached = true after recovering within the ceiling")
	}
	if llm.calls != 2 {
		t.Errorf("generator called %d times, want 2", llm.calls)
	}
}

func TestProcessQuestionRetryExhaustion(t *testing.T) {
	retriever := &stubRetriever{passages: passages(2)}
	j := &stubJudge{grounded: []bool{false}, addressed: true}
	llm := &stubLLM{}
	svc := workflow.NewService(retriever, j, llm)

	state, err := svc.ProcessQuestion(context.Background(), "how is the surplus computed?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if want := workflow.MaxGenerationRetries + 1; state.RetryCount != want {
		t.Errorf("RetryCount = %d, want %d", state.RetryCount, want)
	}
	if !state.RetryLimitReached {
		t.Error("RetryLimitReached = false after exhausting retries")
	}
	if state.Verdict != workflow.VerdictHallucination {
		t.Errorf("Verdict = %q, want %q", state.Verdict, workflow.VerdictHallucination)
	}
	if state.Solution == "" {
		t.Error("Solution is empty; the last answer must still be surfaced")
	}
	if j.assessCalls != 0 {
		t.Errorf("AssessAnswer called %d times for never-grounded answers, want 0", j.assessCalls)
	}
}

func TestProcessQuestionNotAddressedIsTerminal(t *testing.T) {
	retriever := &stubRetriever{passages: passages(2)}
	j := &stubJudge{addressed: false}
	llm := &stubLLM{}
	svc := workflow.NewService(retriever, j, llm)

	state, err := svc.ProcessQuestion(context.Background(), "what is the capital of France?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if state.Verdict != workflow.VerdictNotAddressed {
		t.Errorf("Verdict = %q, want %q", state.Verdict, workflow.VerdictNotAddressed)
	}
	if state.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1; unaddressed answers must not retry", state.RetryCount)
	}
	if llm.calls != 1 {
		t.Errorf("generator called %d times, want 1", llm.calls)
	}
}

func TestProcessQuestionMixedRelevanceSetsOnlineFlag(t *testing.T) {
	retriever := &stubRetriever{passages: passages(3)}
	j := &stubJudge{
		grades:    []string{judge.ScoreRelevant, judge.ScoreIrrelevant, judge.ScoreRelevant},
		addressed: true,
	}
	svc := workflow.NewService(retriever, j, &stubLLM{})

	state, err := svc.ProcessQuestion(context.Background(), "what feeds soil storage?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if !state.OnlineSearch {
		t.Error("OnlineSearch = false with an irrelevant passage present")
	}
	if state.SearchMethod != workflow.SearchMethodOnline {
		t.Errorf("SearchMethod = %q, want %q", state.SearchMethod, workflow.SearchMethodOnline)
	}
	if len(state.Documents) != 2 {
		t.Errorf("Documents = %d passages, want 2 relevant ones", len(state.Documents))
	}
	if state.NoDocumentsAvailable {
		t.Error("NoDocumentsAvailable = true with relevant passages present")
	}
}

func TestProcessQuestionAllIrrelevantFallsBack(t *testing.T) {
	question := "what is quantum entanglement?"
	retriever := &stubRetriever{passages: passages(2)}
	j := &stubJudge{grades: []string{judge.ScoreIrrelevant, judge.ScoreIrrelevant}}
	llm := &stubLLM{}
	svc := workflow.NewService(retriever, j, llm)

	state, err := svc.ProcessQuestion(context.Background(), question)
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if !state.NoDocumentsAvailable {
		t.Error("NoDocumentsAvailable = false with no relevant passages")
	}
	if !state.OnlineSearch {
		t.Error("OnlineSearch = false with no relevant passages")
	}
	if want := workflow.FallbackMessage(question); state.Solution != want {
		t.Errorf("Solution = %q, want fallback %q", state.Solution, want)
	}
	if llm.calls != 0 {
		t.Errorf("generator model called %d times on the fallback path, want 0", llm.calls)
	}
	if j.groundCalls != 0 || j.assessCalls != 0 {
		t.Errorf("post-generation checks ran on the fallback path: grounding=%d assess=%d",
			j.groundCalls, j.assessCalls)
	}
	if state.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1", state.RetryCount)
	}
}

func TestProcessQuestionGradingFailurePropagates(t *testing.T) {
	gradeErr := &judge.Error{Kind: judge.KindGrade, Err: errors.New("model unreachable")}
	retriever := &stubRetriever{passages: passages(2)}
	j := &stubJudge{gradeErr: gradeErr}
	svc := workflow.NewService(retriever, j, &stubLLM{})

	_, err := svc.ProcessQuestion(context.Background(), "what is actual evapotranspiration?")

	var judgeErr *judge.Error
	if !errors.As(err, &judgeErr) {
		t.Fatalf("error = %v, want judge.Error", err)
	}
	if judgeErr.Kind != judge.KindGrade {
		t.Errorf("Kind = %q, want %q", judgeErr.Kind, judge.KindGrade)
	}
}

func TestProcessQuestionGroundingFailurePropagates(t *testing.T) {
	groundErr := &judge.Error{Kind: judge.KindGrounding, Err: errors.New("model unreachable")}
	retriever := &stubRetriever{passages: passages(1)}
	j := &stubJudge{groundErr: groundErr}
	svc := workflow.NewService(retriever, j, &stubLLM{})

	_, err := svc.ProcessQuestion(context.Background(), "what bounds soil storage?")

	var judgeErr *judge.Error
	if !errors.As(err, &judgeErr) {
		t.Fatalf("error = %v, want judge.Error", err)
	}
}

func TestProcessQuestionCustomRetryCeiling(t *testing.T) {
	retriever := &stubRetriever{passages: passages(1)}
	j := &stubJudge{grounded: []bool{false}}
	svc := workflow.NewService(retriever, j, &stubLLM{}, workflow.WithRetryCeiling(1))

	state, err := svc.ProcessQuestion(context.Background(), "what is the heat index?")
	if err != nil {
		t.Fatalf("ProcessQuestion() error = %v", err)
	}

	if state.RetryCount != 2 {
		t.Errorf("RetryCount = %d, want 2 with ceiling 1", state.RetryCount)
	}
	if !state.RetryLimitReached {
		t.Error("RetryLimitReached = false with ceiling 1 exhausted")
	}
}
