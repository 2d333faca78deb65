package workflow

import (
	"context"
	"fmt"

	"hydrorag/src/core/judge"
)

// Passage is one retrieved unit of document text considered as evidence for
// answering a question
type Passage struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	Position int    `json:"position"`
}

// Retriever fetches the passages most similar to a query. May return an
// empty sequence.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Passage, error)
}

// Judge covers the judgments the workflow needs: per-passage relevance
// grading and the two post-generation checks
type Judge interface {
	GradeDocument(ctx context.Context, question, passage string) (judge.GradeResult, error)
	CheckGrounding(ctx context.Context, answer, context string) (judge.GroundingResult, error)
	AssessAnswer(ctx context.Context, question, answer string) (judge.AnswerAssessment, error)
}

// LLM is the text-generation contract consumed by the answer generator
type LLM interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

const (
	SearchMethodUnspecified = "unspecified"
	SearchMethodDocuments   = "documents"
	// SearchMethodOnline marks that supplementary online search is warranted.
	// Advisory only: nothing in this service performs online search.
	SearchMethodOnline = "online"
)

// Verdict is the ternary outcome of the post-generation checks
type Verdict string

const (
	VerdictHallucination   Verdict = "hallucination_detected"
	VerdictAnswersQuestion Verdict = "answers_question"
	VerdictNotAddressed    Verdict = "question_not_addressed"
)

// State is threaded through one question's processing and returned as the
// terminal result
type State struct {
	Question               string                  `json:"question"`
	Solution               string                  `json:"solution"`
	Documents              []Passage               `json:"documents"`
	SearchMethod           string                  `json:"search_method"`
	OnlineSearch           bool                    `json:"online_search"`
	DocumentEvaluations    []judge.GradeResult     `json:"document_evaluations"`
	QuestionRelevanceScore *judge.AnswerAssessment `json:"question_relevance_score,omitempty"`
	DocumentRelevanceScore *judge.GroundingResult  `json:"document_relevance_score,omitempty"`
	Verdict                Verdict                 `json:"verdict,omitempty"`
	RetryCount             int                     `json:"retry_count"`
	NoDocumentsAvailable   bool                    `json:"no_documents_available"`
	RetryLimitReached      bool                    `json:"retry_limit_reached"`
}

// ValidationError rejects a question before any retrieval or judge call
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question: %s", e.Reason)
}

// RetrievalError wraps a failed retriever call; not retried by the workflow
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
