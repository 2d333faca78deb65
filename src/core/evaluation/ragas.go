package evaluation

import (
	"context"

	"hydrorag/src/core/judge"
	"hydrorag/src/infrastructure/log"
)

// neutralScore stands in for a dimension whose judge call failed. The
// evaluation run keeps going; a broken judge must not zero out a report.
const neutralScore = 0.5

// RAGAS overall weighting.
const (
	weightFaithfulness = 0.3
	weightRelevancy    = 0.3
	weightPrecision    = 0.2
	weightRecall       = 0.2
)

// QualityJudge covers the judge calls the quality engine issues.
type QualityJudge interface {
	Faithfulness(ctx context.Context, answer, context string) (judge.FaithfulnessResult, error)
	AnswerRelevancy(ctx context.Context, question, answer string) (judge.RelevancyResult, error)
	ContextPrecision(ctx context.Context, question, context string) (judge.PrecisionResult, error)
	ContextRecall(ctx context.Context, question, context, groundTruth string) (judge.RecallResult, error)
}

// Embedder produces vectors for the embedding-based correctness dimension.
type Embedder interface {
	GetEmbedding(ctx context.Context, model string, text string) ([]float32, error)
}

// Sample is one question run through the pipeline, ready for scoring.
type Sample struct {
	Question    string
	Answer      string
	Context     string
	GroundTruth string
	LatencyMs   float64
	Category    Category
	Difficulty  Difficulty
}

// QualityResult holds the per-dimension scores of one sample.
type QualityResult struct {
	Question          string  `json:"question"`
	Faithfulness      float64 `json:"faithfulness"`
	AnswerRelevancy   float64 `json:"answer_relevancy"`
	ContextPrecision  float64 `json:"context_precision"`
	ContextRecall     float64 `json:"context_recall"`
	AnswerCorrectness float64 `json:"answer_correctness"`
	Overall           float64 `json:"overall"`
}

// QualityEvaluator is the RAGAS-style answer quality engine.
type QualityEvaluator struct {
	judge          QualityJudge
	embedder       Embedder
	embeddingModel string
}

func NewQualityEvaluator(j QualityJudge, embedder Embedder, embeddingModel string) *QualityEvaluator {
	return &QualityEvaluator{
		judge:          j,
		embedder:       embedder,
		embeddingModel: embeddingModel,
	}
}

// EvaluateSingle scores one sample across all quality dimensions. A failed
// judge or embedding call degrades that dimension to the neutral score
// instead of failing the run.
func (e *QualityEvaluator) EvaluateSingle(ctx context.Context, sample Sample) QualityResult {
	result := QualityResult{Question: sample.Question}

	if r, err := e.judge.Faithfulness(ctx, sample.Answer, sample.Context); err != nil {
		log.Error(err, "faithfulness judgment failed, using neutral score")
		result.Faithfulness = neutralScore
	} else {
		result.Faithfulness = r.Score
	}

	if r, err := e.judge.AnswerRelevancy(ctx, sample.Question, sample.Answer); err != nil {
		log.Error(err, "relevancy judgment failed, using neutral score")
		result.AnswerRelevancy = neutralScore
	} else {
		result.AnswerRelevancy = r.Score
	}

	if r, err := e.judge.ContextPrecision(ctx, sample.Question, sample.Context); err != nil {
		log.Error(err, "precision judgment failed, using neutral score")
		result.ContextPrecision = neutralScore
	} else {
		result.ContextPrecision = r.Score
	}

	if r, err := e.judge.ContextRecall(ctx, sample.Question, sample.Context, sample.GroundTruth); err != nil {
		log.Error(err, "recall judgment failed, using neutral score")
		result.ContextRecall = neutralScore
	} else {
		result.ContextRecall = r.Score
	}

	result.AnswerCorrectness = e.answerCorrectness(ctx, sample.Answer, sample.GroundTruth)

	result.Overall = weightFaithfulness*result.Faithfulness +
		weightRelevancy*result.AnswerRelevancy +
		weightPrecision*result.ContextPrecision +
		weightRecall*result.ContextRecall

	return result
}

// answerCorrectness compares the answer to the reference by embedding
// cosine similarity. It is an auxiliary dimension, reported but not part
// of the weighted overall.
func (e *QualityEvaluator) answerCorrectness(ctx context.Context, answer, groundTruth string) float64 {
	if answer == "" || groundTruth == "" {
		return 0
	}

	answerVec, err := e.embedder.GetEmbedding(ctx, e.embeddingModel, answer)
	if err != nil {
		log.Error(err, "failed to embed answer, using neutral correctness")
		return neutralScore
	}
	truthVec, err := e.embedder.GetEmbedding(ctx, e.embeddingModel, groundTruth)
	if err != nil {
		log.Error(err, "failed to embed ground truth, using neutral correctness")
		return neutralScore
	}

	sim := CosineSimilarity(answerVec, truthVec)
	if sim < 0 {
		sim = 0
	}
	return sim
}

// EvaluateBatch scores every sample in order.
func (e *QualityEvaluator) EvaluateBatch(ctx context.Context, samples []Sample) []QualityResult {
	results := make([]QualityResult, 0, len(samples))
	for _, sample := range samples {
		results = append(results, e.EvaluateSingle(ctx, sample))
	}
	return results
}

// DimensionSummary is the mean and spread of one dimension over a batch.
type DimensionSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// QualitySummary aggregates a batch per dimension.
type QualitySummary struct {
	Count             int              `json:"count"`
	Faithfulness      DimensionSummary `json:"faithfulness"`
	AnswerRelevancy   DimensionSummary `json:"answer_relevancy"`
	ContextPrecision  DimensionSummary `json:"context_precision"`
	ContextRecall     DimensionSummary `json:"context_recall"`
	AnswerCorrectness DimensionSummary `json:"answer_correctness"`
	Overall           DimensionSummary `json:"overall"`
}

func AggregateQuality(results []QualityResult) QualitySummary {
	summary := QualitySummary{Count: len(results)}
	if len(results) == 0 {
		return summary
	}

	collect := func(pick func(QualityResult) float64) DimensionSummary {
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = pick(r)
		}
		return DimensionSummary{Mean: Mean(values), StdDev: StdDev(values)}
	}

	summary.Faithfulness = collect(func(r QualityResult) float64 { return r.Faithfulness })
	summary.AnswerRelevancy = collect(func(r QualityResult) float64 { return r.AnswerRelevancy })
	summary.ContextPrecision = collect(func(r QualityResult) float64 { return r.ContextPrecision })
	summary.ContextRecall = collect(func(r QualityResult) float64 { return r.ContextRecall })
	summary.AnswerCorrectness = collect(func(r QualityResult) float64 { return r.AnswerCorrectness })
	summary.Overall = collect(func(r QualityResult) float64 { return r.Overall })

	return summary
}
