package judge

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"hydrorag/src/infrastructure/log"
)

// LLM defines the structured-output contract the adapter needs from a
// language model backend
type LLM interface {
	GenerateStructured(ctx context.Context, model, system, prompt string, options map[string]interface{}, out interface{}) error
}

// Error is a failed judgment: a network error or an unparseable model reply,
// tagged with the judgment kind it occurred in. Whether it is fatal is the
// caller's decision - the workflow propagates it, evaluation engines absorb
// it into a neutral result.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("judge call %s failed: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client binds judgment templates to an LLM backend. One instance serves both
// the workflow's grading path and the evaluation engines.
type Client struct {
	llm     LLM
	model   string
	options map[string]interface{}
}

type Option func(c *Client)

// WithOptions sets model generation options passed on every judge call
func WithOptions(options map[string]interface{}) Option {
	return func(c *Client) {
		c.options = options
	}
}

func NewClient(llm LLM, model string, opts ...Option) *Client {
	c := &Client{
		llm:   llm,
		model: model,
		// deterministic judgments
		options: map[string]interface{}{"temperature": 0.0},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func executeTemplates(systemTmpl, promptTmpl string, data interface{}) (string, string, error) {
	var systemBuf, promptBuf bytes.Buffer

	sysT := template.Must(template.New("system").Parse(systemTmpl))
	if err := sysT.Execute(&systemBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute system template: %w", err)
	}

	prmptT := template.Must(template.New("prompt").Parse(promptTmpl))
	if err := prmptT.Execute(&promptBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return systemBuf.String(), promptBuf.String(), nil
}

type normalizer interface {
	normalize()
}

func invoke[T any](ctx context.Context, c *Client, kind Kind, systemTmpl, promptTmpl string, data interface{}) (T, error) {
	var out T

	system, prompt, err := executeTemplates(systemTmpl, promptTmpl, data)
	if err != nil {
		return out, &Error{Kind: kind, Err: err}
	}

	log.Debug("judge call", "kind", kind, "prompt_length", len(prompt))
	if err := c.llm.GenerateStructured(ctx, c.model, system, prompt, c.options, &out); err != nil {
		log.Error(err, "judge call failed", "kind", kind)
		return out, &Error{Kind: kind, Err: err}
	}

	if n, ok := any(&out).(normalizer); ok {
		n.normalize()
	}

	return out, nil
}

// GradeData binds the document-relevance template
type GradeData struct {
	Question string
	Passage  string
}

// GradeDocument classifies one retrieved passage as relevant or irrelevant
// to the question
func (c *Client) GradeDocument(ctx context.Context, question, passage string) (GradeResult, error) {
	result, err := invoke[GradeResult](ctx, c, KindGrade, GradeSystemTmpl, GradePromptTmpl, GradeData{
		Question: question,
		Passage:  passage,
	})
	if err != nil {
		return result, err
	}

	if result.Score != ScoreRelevant && result.Score != ScoreIrrelevant {
		return result, &Error{Kind: KindGrade, Err: fmt.Errorf("unexpected grade score %q", result.Score)}
	}

	return result, nil
}

// GroundingData binds the hallucination-check template
type GroundingData struct {
	Context string
	Answer  string
}

// CheckGrounding verifies the generated answer against the passage set
func (c *Client) CheckGrounding(ctx context.Context, answer, context string) (GroundingResult, error) {
	return invoke[GroundingResult](ctx, c, KindGrounding, GroundingSystemTmpl, GroundingPromptTmpl, GroundingData{
		Context: context,
		Answer:  answer,
	})
}

// AnswerData binds the answer-assessment template
type AnswerData struct {
	Question string
	Answer   string
}

// AssessAnswer checks whether the generated answer addresses the question
func (c *Client) AssessAnswer(ctx context.Context, question, answer string) (AnswerAssessment, error) {
	return invoke[AnswerAssessment](ctx, c, KindAnswer, AnswerSystemTmpl, AnswerPromptTmpl, AnswerData{
		Question: question,
		Answer:   answer,
	})
}

// FaithfulnessData binds the faithfulness template
type FaithfulnessData struct {
	Context string
	Answer  string
}

// Faithfulness scores answer-to-context factual consistency
func (c *Client) Faithfulness(ctx context.Context, answer, context string) (FaithfulnessResult, error) {
	return invoke[FaithfulnessResult](ctx, c, KindFaithfulness, FaithfulnessSystemTmpl, FaithfulnessPromptTmpl, FaithfulnessData{
		Context: context,
		Answer:  answer,
	})
}

// RelevancyData binds the answer-relevancy template
type RelevancyData struct {
	Question string
	Answer   string
}

// AnswerRelevancy scores how well the answer addresses the question
func (c *Client) AnswerRelevancy(ctx context.Context, question, answer string) (RelevancyResult, error) {
	return invoke[RelevancyResult](ctx, c, KindRelevancy, RelevancySystemTmpl, RelevancyPromptTmpl, RelevancyData{
		Question: question,
		Answer:   answer,
	})
}

// PrecisionData binds the context-precision template
type PrecisionData struct {
	Question string
	Context  string
}

// ContextPrecision scores how much of the retrieved context is relevant
func (c *Client) ContextPrecision(ctx context.Context, question, context string) (PrecisionResult, error) {
	return invoke[PrecisionResult](ctx, c, KindPrecision, PrecisionSystemTmpl, PrecisionPromptTmpl, PrecisionData{
		Question: question,
		Context:  context,
	})
}

// RecallData binds the context-recall template
type RecallData struct {
	Question    string
	Context     string
	GroundTruth string
}

// ContextRecall scores context sufficiency against the ground truth
func (c *Client) ContextRecall(ctx context.Context, question, context, groundTruth string) (RecallResult, error) {
	return invoke[RecallResult](ctx, c, KindRecall, RecallSystemTmpl, RecallPromptTmpl, RecallData{
		Question:    question,
		Context:     context,
		GroundTruth: groundTruth,
	})
}

// RobustnessData binds the robustness template
type RobustnessData struct {
	OriginalQuestion string
	ModifiedQuestion string
	OriginalAnswer   string
	ModifiedAnswer   string
	Context          string
}

// Robustness judges response stability between an original question and a
// perturbed variant
func (c *Client) Robustness(ctx context.Context, data RobustnessData) (RobustnessResult, error) {
	return invoke[RobustnessResult](ctx, c, KindRobustness, RobustnessSystemTmpl, RobustnessPromptTmpl, data)
}

// BiasData binds the bias template
type BiasData struct {
	Question             string
	Answer               string
	Context              string
	AlternativeResponses string
}

// Bias judges a batch of answers for skew
func (c *Client) Bias(ctx context.Context, data BiasData) (BiasResult, error) {
	return invoke[BiasResult](ctx, c, KindBias, BiasSystemTmpl, BiasPromptTmpl, data)
}

// PerformanceData binds the performance template
type PerformanceData struct {
	Question       string
	Answer         string
	GroundTruth    string
	Context        string
	ResponseTimeMs float64
}

// Performance judges accuracy, completeness and clarity of one answer
func (c *Client) Performance(ctx context.Context, data PerformanceData) (PerformanceResult, error) {
	return invoke[PerformanceResult](ctx, c, KindPerformance, PerformanceSystemTmpl, PerformancePromptTmpl, data)
}

// ConsistencyData binds the consistency template
type ConsistencyData struct {
	RelatedQAPairs    string
	Context           string
	TemporalResponses string
}

// Consistency judges stability across a batch of related Q&A pairs
func (c *Client) Consistency(ctx context.Context, data ConsistencyData) (ConsistencyResult, error) {
	return invoke[ConsistencyResult](ctx, c, KindConsistency, ConsistencySystemTmpl, ConsistencyPromptTmpl, data)
}
