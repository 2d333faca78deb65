package evaluation

import "strings"

// Category groups questions by the aspect of the domain they exercise.
type Category string

const (
	CategoryBasicConcepts Category = "basic_concepts"
	CategoryMethodology   Category = "methodology"
	CategoryCalculations  Category = "calculations"
	CategoryIndices       Category = "indices"
	CategoryApplications  Category = "applications"
)

// Difficulty ranks how much domain knowledge a question demands.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Question is one entry of the built-in evaluation catalog, with the
// reference answer the engines score against.
type Question struct {
	ID          int        `json:"id"`
	Question    string     `json:"question"`
	GroundTruth string     `json:"ground_truth"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Keywords    []string   `json:"keywords"`
}

// catalog is the fixed question set on climatological water balance. The
// order is load-bearing: subset selection walks it front to back.
var catalog = []Question{
	{
		ID:          1,
		Question:    "What is the climatological water balance?",
		GroundTruth: "The climatological water balance is an accounting of the water that enters and leaves a soil-plant-atmosphere system over time. It compares precipitation with potential evapotranspiration to track soil water storage, actual evapotranspiration, water deficit and water surplus for a location, usually on a monthly or ten-day basis.",
		Category:    CategoryBasicConcepts,
		Difficulty:  DifficultyBasic,
		Keywords:    []string{"water balance", "precipitation", "evapotranspiration", "soil water storage"},
	},
	{
		ID:          2,
		Question:    "What are the main components of the climatological water balance?",
		GroundTruth: "The main components are precipitation as the water input, potential evapotranspiration as the atmospheric demand, soil water storage bounded by the available water capacity, actual evapotranspiration as the water effectively returned to the atmosphere, water deficit when demand exceeds supply, and water surplus when storage is full and excess water drains or runs off.",
		Category:    CategoryBasicConcepts,
		Difficulty:  DifficultyIntermediate,
		Keywords:    []string{"precipitation", "storage", "deficit", "surplus"},
	},
	{
		ID:          3,
		Question:    "How is potential evapotranspiration estimated by the Thornthwaite method?",
		GroundTruth: "The Thornthwaite method estimates monthly potential evapotranspiration from mean air temperature. A heat index is computed from the twelve monthly temperatures, an empirical exponent is derived from that index, and a standard monthly value is obtained from temperature, the heat index and the exponent. The standard value is then corrected for day length and the number of days in the month.",
		Category:    CategoryMethodology,
		Difficulty:  DifficultyIntermediate,
		Keywords:    []string{"thornthwaite", "heat index", "temperature", "day length"},
	},
	{
		ID:          4,
		Question:    "What is the role of the available water capacity in the water balance computation?",
		GroundTruth: "The available water capacity sets the upper limit of soil water storage. It represents the water the soil can hold between field capacity and the permanent wilting point within the root zone. Storage is depleted exponentially as accumulated potential loss grows and can never exceed the available water capacity, so its choice directly controls the timing and size of deficits and surpluses.",
		Category:    CategoryMethodology,
		Difficulty:  DifficultyIntermediate,
		Keywords:    []string{"available water capacity", "field capacity", "wilting point", "root zone"},
	},
	{
		ID:          5,
		Question:    "How are water deficit and water surplus calculated in the water balance?",
		GroundTruth: "The water deficit is the difference between potential and actual evapotranspiration in periods when the soil cannot meet the atmospheric demand. The water surplus is the water left over after precipitation has met evapotranspiration and refilled the soil to its available water capacity; it appears only while storage is at its maximum.",
		Category:    CategoryCalculations,
		Difficulty:  DifficultyIntermediate,
		Keywords:    []string{"deficit", "surplus", "actual evapotranspiration", "storage"},
	},
	{
		ID:          6,
		Question:    "What is the difference between potential and actual evapotranspiration?",
		GroundTruth: "Potential evapotranspiration is the water loss that would occur from a well-watered reference surface, limited only by atmospheric demand. Actual evapotranspiration is the water really transferred to the atmosphere, limited by the water available in the soil. Actual evapotranspiration equals the potential value when the soil is moist and falls below it as the soil dries.",
		Category:    CategoryCalculations,
		Difficulty:  DifficultyBasic,
		Keywords:    []string{"potential evapotranspiration", "actual evapotranspiration", "atmospheric demand", "soil moisture"},
	},
	{
		ID:          7,
		Question:    "How are the moisture, aridity and humidity indices derived from the water balance?",
		GroundTruth: "The annual water surplus and deficit are expressed as percentages of the annual potential evapotranspiration. The humidity index is the surplus percentage, the aridity index is the deficit percentage, and the moisture index combines them, classically as the humidity index minus a fraction of the aridity index. Together they summarize how wet or dry a climate is relative to its atmospheric demand.",
		Category:    CategoryIndices,
		Difficulty:  DifficultyAdvanced,
		Keywords:    []string{"moisture index", "aridity index", "humidity index", "annual surplus"},
	},
	{
		ID:          8,
		Question:    "How is a climate classified from the water balance indices?",
		GroundTruth: "In the Thornthwaite classification the moisture index places the climate in a humidity class ranging from arid through semi-arid, dry sub-humid and moist sub-humid up to humid and perhumid. Secondary letters describe the seasonality of deficit or surplus and the thermal regime given by the annual potential evapotranspiration, producing a compact climate formula.",
		Category:    CategoryIndices,
		Difficulty:  DifficultyAdvanced,
		Keywords:    []string{"climate classification", "moisture index", "humidity class", "thermal regime"},
	},
	{
		ID:          9,
		Question:    "What are practical applications of the climatological water balance in agriculture?",
		GroundTruth: "The water balance supports crop zoning, choice of sowing dates, assessment of drought risk, estimation of irrigation need and scheduling, and monitoring of water availability during the growing season. It is also used to compare the suitability of regions and years for rainfed cropping.",
		Category:    CategoryApplications,
		Difficulty:  DifficultyBasic,
		Keywords:    []string{"crop zoning", "sowing dates", "drought risk", "irrigation"},
	},
	{
		ID:          10,
		Question:    "How can the water balance support irrigation planning?",
		GroundTruth: "The water balance indicates when and how much the soil water deficit must be replaced. The deficit series identifies the critical periods and the depth of water to be applied, while the storage series shows how long the soil reserve can sustain the crop between irrigations. Seasonal totals size the irrigation system and the water supply it requires.",
		Category:    CategoryApplications,
		Difficulty:  DifficultyIntermediate,
		Keywords:    []string{"irrigation scheduling", "deficit", "soil reserve", "critical periods"},
	},
}

// Questions returns a copy of the full catalog.
func Questions() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// QuestionByID looks a question up by its catalog ID.
func QuestionByID(id int) (Question, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// ByCategory returns the catalog questions of one category, in catalog order.
func ByCategory(c Category) []Question {
	var out []Question
	for _, q := range catalog {
		if q.Category == c {
			out = append(out, q)
		}
	}
	return out
}

// ByDifficulty returns the catalog questions of one difficulty, in catalog order.
func ByDifficulty(d Difficulty) []Question {
	var out []Question
	for _, q := range catalog {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// EvaluationSubset picks a difficulty-balanced slice of the catalog: up to
// two basic, two intermediate and one advanced question, in catalog order
// within each group, truncated to n.
func EvaluationSubset(n int) []Question {
	if n <= 0 {
		return nil
	}

	take := func(d Difficulty, limit int) []Question {
		qs := ByDifficulty(d)
		if len(qs) > limit {
			qs = qs[:limit]
		}
		return qs
	}

	selected := take(DifficultyBasic, 2)
	selected = append(selected, take(DifficultyIntermediate, 2)...)
	selected = append(selected, take(DifficultyAdvanced, 1)...)

	if len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

// Statistics summarizes the catalog composition.
type Statistics struct {
	Total        int                `json:"total"`
	ByCategory   map[Category]int   `json:"by_category"`
	ByDifficulty map[Difficulty]int `json:"by_difficulty"`
}

func DatasetStatistics() Statistics {
	stats := Statistics{
		Total:        len(catalog),
		ByCategory:   make(map[Category]int),
		ByDifficulty: make(map[Difficulty]int),
	}
	for _, q := range catalog {
		stats.ByCategory[q.Category]++
		stats.ByDifficulty[q.Difficulty]++
	}
	return stats
}

// SearchQuestions returns catalog entries whose question, ground truth or
// keywords contain the term, case-insensitively.
func SearchQuestions(term string) []Question {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []Question
	for _, q := range catalog {
		if matchesTerm(q, term) {
			out = append(out, q)
		}
	}
	return out
}

func matchesTerm(q Question, term string) bool {
	if strings.Contains(strings.ToLower(q.Question), term) ||
		strings.Contains(strings.ToLower(q.GroundTruth), term) {
		return true
	}
	for _, kw := range q.Keywords {
		if strings.Contains(strings.ToLower(kw), term) {
			return true
		}
	}
	return false
}
