package judge

// Kind identifies a judgment type. Every structured call through the adapter
// is tagged with exactly one Kind, and each Kind maps to one result record.
type Kind string

const (
	KindGrade        Kind = "document_relevance"
	KindGrounding    Kind = "hallucination_check"
	KindAnswer       Kind = "answer_assessment"
	KindFaithfulness Kind = "faithfulness"
	KindRelevancy    Kind = "answer_relevancy"
	KindPrecision    Kind = "context_precision"
	KindRecall       Kind = "context_recall"
	KindRobustness   Kind = "robustness"
	KindBias         Kind = "bias"
	KindPerformance  Kind = "performance"
	KindConsistency  Kind = "consistency"
)

const (
	ScoreRelevant   = "relevant"
	ScoreIrrelevant = "irrelevant"
)

// GradeResult is the binary relevance classification of one passage
type GradeResult struct {
	Score     string `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Relevant reports whether the passage was classified as relevant
func (g GradeResult) Relevant() bool {
	return g.Score == ScoreRelevant
}

// GroundingResult is the verdict of the hallucination check: whether the
// generated answer is supported by the retrieved passages
type GroundingResult struct {
	Grounded   bool    `json:"grounded"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (g *GroundingResult) normalize() {
	g.Confidence = clamp01(g.Confidence)
}

// AnswerAssessment reports whether the generated answer addresses the question
type AnswerAssessment struct {
	Addressed      bool    `json:"addressed"`
	RelevanceScore float64 `json:"relevance_score"`
	Completeness   string  `json:"completeness"`
	Reasoning      string  `json:"reasoning"`
}

func (a *AnswerAssessment) normalize() {
	a.RelevanceScore = clamp01(a.RelevanceScore)
}

// FaithfulnessResult scores answer-to-context factual consistency
type FaithfulnessResult struct {
	Score          float64  `json:"score"`
	Reasoning      string   `json:"reasoning"`
	Contradictions []string `json:"contradictions"`
}

func (f *FaithfulnessResult) normalize() {
	f.Score = clamp01(f.Score)
}

// RelevancyResult scores how well the answer addresses the question
type RelevancyResult struct {
	Score              float64  `json:"score"`
	Reasoning          string   `json:"reasoning"`
	KeyPointsAddressed []string `json:"key_points_addressed"`
	MissingPoints      []string `json:"missing_points"`
}

func (r *RelevancyResult) normalize() {
	r.Score = clamp01(r.Score)
}

// PrecisionResult scores how much of the retrieved context is relevant
type PrecisionResult struct {
	Score          float64 `json:"score"`
	Reasoning      string  `json:"reasoning"`
	RelevantChunks int     `json:"relevant_chunks"`
	TotalChunks    int     `json:"total_chunks"`
}

func (p *PrecisionResult) normalize() {
	p.Score = clamp01(p.Score)
}

// RecallResult scores whether the retrieved context was sufficient to
// reproduce the ground truth answer
type RecallResult struct {
	Score         float64  `json:"score"`
	Reasoning     string   `json:"reasoning"`
	RetrievedInfo []string `json:"retrieved_info"`
	MissingInfo   []string `json:"missing_info"`
}

func (r *RecallResult) normalize() {
	r.Score = clamp01(r.Score)
}

// RobustnessResult scores tolerance to input perturbations
type RobustnessResult struct {
	Score              float64            `json:"score"`
	Reasoning          string             `json:"reasoning"`
	VulnerabilityAreas []string           `json:"vulnerability_areas"`
	StressTestResults  map[string]float64 `json:"stress_test_results"`
}

func (r *RobustnessResult) normalize() {
	r.Score = clamp01(r.Score)
}

// BiasResult scores answer batches for skew; higher means less biased
type BiasResult struct {
	Score          float64  `json:"score"`
	Reasoning      string   `json:"reasoning"`
	DetectedBiases []string `json:"detected_biases"`
	FairnessIssues []string `json:"fairness_issues"`
}

func (b *BiasResult) normalize() {
	b.Score = clamp01(b.Score)
}

// PerformanceResult scores accuracy, completeness and clarity of one answer
type PerformanceResult struct {
	Score             float64            `json:"score"`
	Reasoning         string             `json:"reasoning"`
	AccuracyMetrics   map[string]float64 `json:"accuracy_metrics"`
	EfficiencyMetrics map[string]float64 `json:"efficiency_metrics"`
}

func (p *PerformanceResult) normalize() {
	p.Score = clamp01(p.Score)
}

// ConsistencyResult scores stability across related question/answer pairs
type ConsistencyResult struct {
	Score             float64            `json:"score"`
	Reasoning         string             `json:"reasoning"`
	VariationAnalysis map[string]float64 `json:"variation_analysis"`
	StabilityIssues   []string           `json:"stability_issues"`
}

func (c *ConsistencyResult) normalize() {
	c.Score = clamp01(c.Score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
