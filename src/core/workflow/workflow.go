package workflow

import (
	"context"
	"strings"

	"hydrorag/src/infrastructure/log"
)

// MaxGenerationRetries is the regeneration ceiling after a hallucination
// verdict. The first attempt is not a retry, so a question sees at most
// MaxGenerationRetries+1 generation attempts.
const MaxGenerationRetries = 3

// Service runs one question through retrieval, grading, generation and the
// post-generation checks. All steps are sequential; every judge call blocks
// the step that issues it.
type Service struct {
	retriever  Retriever
	grader     *Grader
	generator  *Generator
	judge      Judge
	maxRetries int
}

type Option func(s *Service)

// WithRetryCeiling overrides the regeneration ceiling
func WithRetryCeiling(max int) Option {
	return func(s *Service) {
		s.maxRetries = max
	}
}

func NewService(retriever Retriever, j Judge, llm LLM, opts ...Option) *Service {
	s := &Service{
		retriever:  retriever,
		grader:     NewGrader(j),
		generator:  NewGenerator(llm),
		judge:      j,
		maxRetries: MaxGenerationRetries,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ProcessQuestion is the workflow entry point. It returns a terminal State,
// or an error for the failures that must reach the caller: an empty
// question (*ValidationError), a retriever failure (*RetrievalError), or a
// judge failure on the grading/checking path (*judge.Error). Hitting the
// retry ceiling is not an error; the State carries RetryLimitReached and
// the last generated answer.
func (s *Service) ProcessQuestion(ctx context.Context, question string) (*State, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &ValidationError{Reason: "question is empty"}
	}

	state := &State{
		Question:     question,
		SearchMethod: SearchMethodUnspecified,
	}

	// Retrieving
	passages, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	log.Debug("retrieved passages", "question", question, "count", len(passages))

	// Grading: filter to relevant-only. Any irrelevant passage marks online
	// search as warranted; the flag is advisory and never acted on here.
	relevant, grades, anyIrrelevant, err := s.grader.GradeAll(ctx, question, passages)
	if err != nil {
		return nil, err
	}
	state.DocumentEvaluations = grades
	state.Documents = relevant
	if anyIrrelevant {
		state.SearchMethod = SearchMethodOnline
		state.OnlineSearch = true
	} else {
		state.SearchMethod = SearchMethodDocuments
	}
	if len(relevant) == 0 {
		state.NoDocumentsAvailable = true
	}

	// Generating, with the hallucination loop as an explicit bounded loop
	passageContext := FormatPassages(relevant)
	for {
		state.RetryCount++

		answer, err := s.generator.Generate(ctx, question, relevant)
		if err != nil {
			return nil, err
		}
		state.Solution = answer

		// The fallback path needs no checks: the message is templated, not
		// generated, so there is nothing to hallucinate.
		if len(relevant) == 0 {
			return state, nil
		}

		grounding, err := s.judge.CheckGrounding(ctx, answer, passageContext)
		if err != nil {
			return nil, err
		}
		state.DocumentRelevanceScore = &grounding

		if !grounding.Grounded {
			state.Verdict = VerdictHallucination
			if state.RetryCount > s.maxRetries {
				log.Info("retry ceiling reached, surfacing last answer",
					"question", question, "attempts", state.RetryCount)
				state.RetryLimitReached = true
				return state, nil
			}
			log.Debug("hallucination detected, regenerating", "attempt", state.RetryCount)
			continue
		}

		assessment, err := s.judge.AssessAnswer(ctx, question, answer)
		if err != nil {
			return nil, err
		}
		state.QuestionRelevanceScore = &assessment

		// Only hallucination loops. An unaddressed but grounded answer is
		// returned as-is with the verdict exposed for transparency.
		if assessment.Addressed {
			state.Verdict = VerdictAnswersQuestion
		} else {
			state.Verdict = VerdictNotAddressed
		}

		return state, nil
	}
}
