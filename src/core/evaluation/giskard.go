package evaluation

import (
	"context"
	"fmt"
	"strings"

	"hydrorag/src/core/judge"
	"hydrorag/src/infrastructure/log"
)

// AskFunc runs one question through the answering pipeline and returns the
// generated answer.
type AskFunc func(ctx context.Context, question string) (string, error)

// Term lists for the bias and consistency heuristics. Lowercase matching.
var (
	geographicTerms  = []string{"brazil", "northeast", "southeast", "north", "south"}
	temporalTerms    = []string{"current", "modern", "ancient", "recent", "historical"}
	methodTerms      = []string{"thornthwaite", "penman", "blaney-criddle", "hargreaves"}
	consistencyTerms = []string{"precipitation", "evapotranspiration", "water balance", "storage"}
)

const (
	recommendationThreshold = 0.7
	biasPenalty             = 0.1
	lengthVariationLimit    = 0.5
)

// RiskJudge covers the judge calls the risk engine issues.
type RiskJudge interface {
	Robustness(ctx context.Context, data judge.RobustnessData) (judge.RobustnessResult, error)
	Bias(ctx context.Context, data judge.BiasData) (judge.BiasResult, error)
	Performance(ctx context.Context, data judge.PerformanceData) (judge.PerformanceResult, error)
	Consistency(ctx context.Context, data judge.ConsistencyData) (judge.ConsistencyResult, error)
}

// RiskEvaluator probes the pipeline for robustness, bias, performance and
// consistency weaknesses. The robustness probe takes an AskFunc because it
// re-asks perturbed questions through the pipeline under test.
type RiskEvaluator struct {
	judge RiskJudge
}

func NewRiskEvaluator(j RiskJudge) *RiskEvaluator {
	return &RiskEvaluator{judge: j}
}

// RobustnessReport scores answer stability under question perturbations.
type RobustnessReport struct {
	Score          float64            `json:"score"`
	HeuristicScore float64            `json:"heuristic_score"`
	PerAxis        map[string]float64 `json:"per_axis"`
	VulnerableAxes []string           `json:"vulnerable_axes"`
}

// EvaluateRobustness re-asks the question under every perturbation axis and
// compares each variant answer to the original by token overlap. The
// heuristic mean is blended half and half with one judge opinion on the
// least stable variant; if the judge fails only the heuristic counts.
func (e *RiskEvaluator) EvaluateRobustness(ctx context.Context, sample Sample, ask AskFunc) RobustnessReport {
	report := RobustnessReport{PerAxis: make(map[string]float64)}

	worstAxis := ""
	worstScore := 2.0
	worstQuestion := ""
	worstAnswer := ""

	var scores []float64
	for _, axis := range PerturbationAxes() {
		perturbed := Perturb(sample.Question, axis)
		answer, err := ask(ctx, perturbed)
		score := 0.0
		if err != nil {
			log.Error(err, "perturbed question failed", "axis", axis)
		} else {
			score = JaccardSimilarity(sample.Answer, answer)
		}
		report.PerAxis[axis] = score
		scores = append(scores, score)
		if score < 0.5 {
			report.VulnerableAxes = append(report.VulnerableAxes, axis)
		}
		if score < worstScore {
			worstScore = score
			worstAxis = axis
			worstQuestion = perturbed
			worstAnswer = answer
		}
	}

	report.HeuristicScore = Mean(scores)
	report.Score = report.HeuristicScore

	if worstAxis != "" {
		judged, err := e.judge.Robustness(ctx, judge.RobustnessData{
			OriginalQuestion: sample.Question,
			ModifiedQuestion: worstQuestion,
			OriginalAnswer:   sample.Answer,
			ModifiedAnswer:   worstAnswer,
			Context:          sample.Context,
		})
		if err != nil {
			log.Error(err, "robustness judgment failed, keeping heuristic score")
		} else {
			report.Score = 0.5*report.HeuristicScore + 0.5*judged.Score
		}
	}

	return report
}

// BiasReport scores the answer set for regional, methodological and
// temporal skew.
type BiasReport struct {
	Score          float64  `json:"score"`
	DetectedBiases []string `json:"detected_biases"`
}

// EvaluateBias combines a judge opinion with term-frequency heuristics over
// the whole answer set. Every heuristically detected bias shaves a fixed
// penalty off the judged score.
func (e *RiskEvaluator) EvaluateBias(ctx context.Context, samples []Sample) BiasReport {
	report := BiasReport{DetectedBiases: detectBiases(samples)}

	score := neutralScore
	if len(samples) > 0 {
		judged, err := e.judge.Bias(ctx, judge.BiasData{
			Question:             samples[0].Question,
			Answer:               samples[0].Answer,
			Context:              samples[0].Context,
			AlternativeResponses: joinAnswers(samples[1:]),
		})
		if err != nil {
			log.Error(err, "bias judgment failed, using neutral score")
		} else {
			score = judged.Score
		}
	}

	score -= biasPenalty * float64(len(report.DetectedBiases))
	if score < 0 {
		score = 0
	}
	report.Score = score
	return report
}

func detectBiases(samples []Sample) []string {
	text := strings.ToLower(joinAnswers(samples))
	var detected []string

	if dominantTerm(text, geographicTerms, 3) != "" {
		detected = append(detected, "geographic_bias")
	}
	if dominantTerm(text, methodTerms, 2) != "" {
		detected = append(detected, "methodological_bias")
	}
	if temporalSkew(samples) {
		detected = append(detected, "temporal_bias")
	}
	return detected
}

// dominantTerm reports the term whose mention count exceeds the given
// multiple of the mean count over all terms, if any.
func dominantTerm(text string, terms []string, factor float64) string {
	counts := make([]float64, len(terms))
	var total float64
	for i, term := range terms {
		counts[i] = float64(strings.Count(text, term))
		total += counts[i]
	}
	if total == 0 {
		return ""
	}
	mean := total / float64(len(terms))
	for i, term := range terms {
		if counts[i] >= 2 && counts[i] > factor*mean {
			return term
		}
	}
	return ""
}

// temporalSkew fires when temporal wording saturates the answer set: each
// temporal term an answer mentions counts once, and the total must exceed
// 0.7 per answer.
func temporalSkew(samples []Sample) bool {
	var mentions float64
	for _, s := range samples {
		answer := strings.ToLower(s.Answer)
		for _, term := range temporalTerms {
			if strings.Contains(answer, term) {
				mentions++
			}
		}
	}
	return mentions > float64(len(samples))*0.7
}

// PerformanceReport scores one representative answer with its latency.
type PerformanceReport struct {
	Score     float64 `json:"score"`
	LatencyMs float64 `json:"latency_ms"`
}

func (e *RiskEvaluator) EvaluatePerformance(ctx context.Context, sample Sample) PerformanceReport {
	report := PerformanceReport{Score: neutralScore, LatencyMs: sample.LatencyMs}

	judged, err := e.judge.Performance(ctx, judge.PerformanceData{
		Question:       sample.Question,
		Answer:         sample.Answer,
		GroundTruth:    sample.GroundTruth,
		Context:        sample.Context,
		ResponseTimeMs: sample.LatencyMs,
	})
	if err != nil {
		log.Error(err, "performance judgment failed, using neutral score")
		return report
	}

	report.Score = judged.Score
	return report
}

// ConsistencyReport scores stability of terminology and answer depth across
// related questions.
type ConsistencyReport struct {
	Score           float64            `json:"score"`
	TermVariation   map[string]float64 `json:"term_variation"`
	LengthVariation float64            `json:"length_variation"`
	UnevenDepth     bool               `json:"uneven_depth"`
}

// EvaluateConsistency blends a heuristic on term usage and answer length
// spread with one judge opinion over the whole Q&A set.
func (e *RiskEvaluator) EvaluateConsistency(ctx context.Context, samples []Sample) ConsistencyReport {
	report := ConsistencyReport{TermVariation: make(map[string]float64)}
	if len(samples) == 0 {
		report.Score = neutralScore
		return report
	}

	var variations []float64
	for _, term := range consistencyTerms {
		counts := make([]float64, len(samples))
		for i, s := range samples {
			counts[i] = float64(strings.Count(strings.ToLower(s.Answer), term))
		}
		cv := CoefficientOfVariation(counts)
		report.TermVariation[term] = cv
		variations = append(variations, cv)
	}

	lengths := make([]float64, len(samples))
	for i, s := range samples {
		lengths[i] = float64(len(strings.Fields(s.Answer)))
	}
	report.LengthVariation = CoefficientOfVariation(lengths)
	report.UnevenDepth = report.LengthVariation > lengthVariationLimit

	heuristic := 1 - Mean(variations)
	if heuristic < 0 {
		heuristic = 0
	}
	if report.UnevenDepth {
		heuristic -= 0.1
		if heuristic < 0 {
			heuristic = 0
		}
	}

	report.Score = heuristic
	judged, err := e.judge.Consistency(ctx, judge.ConsistencyData{
		RelatedQAPairs: formatQAPairs(samples),
		Context:        samples[0].Context,
	})
	if err != nil {
		log.Error(err, "consistency judgment failed, keeping heuristic score")
	} else {
		report.Score = 0.5*heuristic + 0.5*judged.Score
	}

	return report
}

// RiskReport is the combined output of all four probes.
type RiskReport struct {
	Robustness      RobustnessReport  `json:"robustness"`
	Bias            BiasReport        `json:"bias"`
	Performance     PerformanceReport `json:"performance"`
	Consistency     ConsistencyReport `json:"consistency"`
	RiskScore       float64           `json:"risk_score"`
	Recommendations []string          `json:"recommendations"`
}

// EvaluateComprehensive runs all four probes over a sample set. The risk
// score is one minus the equally weighted mean of the dimension scores, so
// a perfect pipeline scores zero risk.
func (e *RiskEvaluator) EvaluateComprehensive(ctx context.Context, samples []Sample, ask AskFunc) *RiskReport {
	report := &RiskReport{}
	if len(samples) == 0 {
		report.RiskScore = neutralScore
		return report
	}

	report.Robustness = e.EvaluateRobustness(ctx, samples[0], ask)
	report.Bias = e.EvaluateBias(ctx, samples)
	report.Performance = e.EvaluatePerformance(ctx, samples[0])
	report.Consistency = e.EvaluateConsistency(ctx, samples)

	dims := []float64{
		report.Robustness.Score,
		report.Bias.Score,
		report.Performance.Score,
		report.Consistency.Score,
	}
	report.RiskScore = 1 - Mean(dims)
	report.Recommendations = recommendations(report)

	return report
}

func recommendations(report *RiskReport) []string {
	var recs []string
	if report.Robustness.Score < recommendationThreshold {
		recs = append(recs, "Improve robustness: answers change substantially under small rewordings of the question.")
	}
	if report.Bias.Score < recommendationThreshold {
		recs = append(recs, "Reduce bias: responses over-represent specific regions, methods or time frames.")
	}
	if report.Performance.Score < recommendationThreshold {
		recs = append(recs, "Improve performance: answers fall short of the reference in accuracy or response time.")
	}
	if report.Consistency.Score < recommendationThreshold {
		recs = append(recs, "Improve consistency: related questions receive answers of varying depth and terminology.")
	}
	return recs
}

func joinAnswers(samples []Sample) string {
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		parts = append(parts, s.Answer)
	}
	return strings.Join(parts, "\n\n")
}

func formatQAPairs(samples []Sample) string {
	var b strings.Builder
	for i, s := range samples {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, s.Question, i+1, s.Answer)
	}
	return b.String()
}
