package evaluation

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"hydrorag/src/infrastructure/log"
)

// Answer is what the answering pipeline returns for one evaluation
// question: the generated text plus the passage context it was grounded on.
type Answer struct {
	Text    string
	Context string
}

// AnswerFunc asks the pipeline one question within a session's document
// scope.
type AnswerFunc func(ctx context.Context, sessionID, question string) (Answer, error)

// ProgressFunc receives coarse progress while a run is collecting answers
// and scoring them.
type ProgressFunc func(stage string, current, total int)

// Health bands for the combined report.
const (
	HealthExcellent        = "Excellent"
	HealthGood             = "Good"
	HealthModerate         = "Moderate"
	HealthNeedsImprovement = "Needs Improvement"
)

const (
	DefaultSubsetSize = 5
	resultTTL         = 30 * time.Minute
)

// Coordinator drives evaluation runs: it answers a balanced question
// subset through the pipeline, feeds the samples to the quality and risk
// engines, and caches per-session results so repeated requests do not
// re-run the judges.
type Coordinator struct {
	quality    *QualityEvaluator
	risk       *RiskEvaluator
	answer     AnswerFunc
	cache      *gocache.Cache
	progress   ProgressFunc
	subsetSize int
}

type CoordinatorOption func(c *Coordinator)

func WithProgress(fn ProgressFunc) CoordinatorOption {
	return func(c *Coordinator) {
		c.progress = fn
	}
}

func WithSubsetSize(n int) CoordinatorOption {
	return func(c *Coordinator) {
		c.subsetSize = n
	}
}

func NewCoordinator(quality *QualityEvaluator, risk *RiskEvaluator, answer AnswerFunc, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		quality:    quality,
		risk:       risk,
		answer:     answer,
		cache:      gocache.New(resultTTL, 10*time.Minute),
		progress:   func(string, int, int) {},
		subsetSize: DefaultSubsetSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// askFunc binds the answer function to one session for the risk engine.
func (c *Coordinator) askFunc(sessionID string) AskFunc {
	return func(ctx context.Context, question string) (string, error) {
		a, err := c.answer(ctx, sessionID, question)
		if err != nil {
			return "", err
		}
		return a.Text, nil
	}
}

// samples answers the balanced subset once per session and caches the
// result, so the quality and risk runs share the same answers.
func (c *Coordinator) samples(ctx context.Context, sessionID string) ([]Sample, error) {
	key := "samples:" + sessionID
	if v, ok := c.cache.Get(key); ok {
		return v.([]Sample), nil
	}

	questions := EvaluationSubset(c.subsetSize)
	samples := make([]Sample, 0, len(questions))
	for i, q := range questions {
		c.progress("answering", i+1, len(questions))

		start := time.Now()
		answer, err := c.answer(ctx, sessionID, q.Question)
		if err != nil {
			return nil, fmt.Errorf("failed to answer evaluation question %d: %w", q.ID, err)
		}

		samples = append(samples, Sample{
			Question:    q.Question,
			Answer:      answer.Text,
			Context:     answer.Context,
			GroundTruth: q.GroundTruth,
			LatencyMs:   float64(time.Since(start).Milliseconds()),
			Category:    q.Category,
			Difficulty:  q.Difficulty,
		})
	}

	c.cache.SetDefault(key, samples)
	return samples, nil
}

// QualityRun is one quality engine pass over the subset.
type QualityRun struct {
	Results []QualityResult `json:"results"`
	Summary QualitySummary  `json:"summary"`
}

// RunQuality evaluates answer quality for a session, serving a cached run
// when one exists.
func (c *Coordinator) RunQuality(ctx context.Context, sessionID string) (*QualityRun, error) {
	key := "quality:" + sessionID
	if v, ok := c.cache.Get(key); ok {
		log.Debug("serving cached quality run", "session", sessionID)
		return v.(*QualityRun), nil
	}

	samples, err := c.samples(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	results := make([]QualityResult, 0, len(samples))
	for i, sample := range samples {
		c.progress("scoring", i+1, len(samples))
		results = append(results, c.quality.EvaluateSingle(ctx, sample))
	}

	run := &QualityRun{Results: results, Summary: AggregateQuality(results)}
	c.cache.SetDefault(key, run)
	return run, nil
}

// RunRisk probes the session's pipeline for risk, serving a cached report
// when one exists.
func (c *Coordinator) RunRisk(ctx context.Context, sessionID string) (*RiskReport, error) {
	key := "risk:" + sessionID
	if v, ok := c.cache.Get(key); ok {
		log.Debug("serving cached risk report", "session", sessionID)
		return v.(*RiskReport), nil
	}

	samples, err := c.samples(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.progress("probing", 1, 1)
	report := c.risk.EvaluateComprehensive(ctx, samples, c.askFunc(sessionID))
	c.cache.SetDefault(key, report)
	return report, nil
}

// Report combines both engines with a single health figure.
type Report struct {
	SessionID   string      `json:"session_id"`
	Quality     *QualityRun `json:"quality"`
	Risk        *RiskReport `json:"risk"`
	HealthScore float64     `json:"health_score"`
	HealthBand  string      `json:"health_band"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// RunComprehensive runs quality first, then risk, and derives the overall
// system health from both.
func (c *Coordinator) RunComprehensive(ctx context.Context, sessionID string) (*Report, error) {
	quality, err := c.RunQuality(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	risk, err := c.RunRisk(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	score, band := SystemHealth(quality.Summary.Overall.Mean, risk.RiskScore)
	return &Report{
		SessionID:   sessionID,
		Quality:     quality,
		Risk:        risk,
		HealthScore: score,
		HealthBand:  band,
		GeneratedAt: time.Now(),
	}, nil
}

// Invalidate drops every cached result of a session.
func (c *Coordinator) Invalidate(sessionID string) {
	c.cache.Delete("samples:" + sessionID)
	c.cache.Delete("quality:" + sessionID)
	c.cache.Delete("risk:" + sessionID)
}

// SystemHealth averages answer quality with the inverse of risk and maps
// the result onto a named band.
func SystemHealth(qualityMean, riskScore float64) (float64, string) {
	score := (qualityMean + (1 - riskScore)) / 2
	switch {
	case score > 0.8:
		return score, HealthExcellent
	case score > 0.6:
		return score, HealthGood
	case score > 0.4:
		return score, HealthModerate
	default:
		return score, HealthNeedsImprovement
	}
}
