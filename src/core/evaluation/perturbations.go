package evaluation

import "strings"

// Perturbation axes for robustness probing. Each axis rewrites the question
// deterministically so repeated runs stress the same variants.
const (
	PerturbationTypos      = "typos"
	PerturbationFormatting = "formatting"
	PerturbationSynonyms   = "synonyms"
	PerturbationLength     = "length"
	PerturbationComplexity = "complexity"
	PerturbationEdgeCases  = "edge_cases"
)

// PerturbationAxes lists every axis in the order they are applied.
func PerturbationAxes() []string {
	return []string{
		PerturbationTypos,
		PerturbationFormatting,
		PerturbationSynonyms,
		PerturbationLength,
		PerturbationComplexity,
		PerturbationEdgeCases,
	}
}

var synonymMap = map[string]string{
	"what":       "which",
	"calculate":  "compute",
	"calculated": "computed",
	"main":       "principal",
	"method":     "approach",
	"role":       "function",
	"difference": "distinction",
	"practical":  "real-world",
	"support":    "assist",
	"derived":    "obtained",
}

// Perturb rewrites a question along one axis. Unknown axes return the
// question unchanged.
func Perturb(question, axis string) string {
	switch axis {
	case PerturbationTypos:
		return perturbTypos(question)
	case PerturbationFormatting:
		return perturbFormatting(question)
	case PerturbationSynonyms:
		return perturbSynonyms(question)
	case PerturbationLength:
		return "Could you please explain in as much detail as possible, covering every relevant aspect and giving examples where appropriate: " + question
	case PerturbationComplexity:
		return question + " Also relate your answer to the other quantities involved and explain how they interact."
	case PerturbationEdgeCases:
		return "   " + question + " ???"
	default:
		return question
	}
}

// Perturbations produces the variant for every axis.
func Perturbations(question string) map[string]string {
	out := make(map[string]string, len(PerturbationAxes()))
	for _, axis := range PerturbationAxes() {
		out[axis] = Perturb(question, axis)
	}
	return out
}

// typoVariants maps domain terms to common misspellings. Ordered so the
// replacement pass is deterministic.
var typoVariants = []struct {
	term string
	typo string
}{
	{"evapotranspiration", "evapotranspriation"},
	{"precipitation", "precipitaton"},
	{"climatological", "climatologic"},
	{"moisture", "moisutre"},
	{"storage", "storge"},
	{"balance", "balnce"},
	{"water", "watter"},
}

// perturbTypos corrupts the domain terms the question mentions. A question
// without any known term gets the middle characters of a word swapped
// instead.
func perturbTypos(question string) string {
	out := question
	lower := strings.ToLower(question)
	changed := false
	for _, tv := range typoVariants {
		if idx := strings.Index(lower, tv.term); idx >= 0 {
			out = out[:idx] + tv.typo + out[idx+len(tv.term):]
			lower = strings.ToLower(out)
			changed = true
		}
	}
	if changed {
		return out
	}
	return swapMiddleCharacters(question)
}

func swapMiddleCharacters(question string) string {
	words := strings.Fields(question)
	for i, w := range words {
		if i%4 != 1 || len(w) < 4 {
			continue
		}
		mid := len(w) / 2
		b := []byte(w)
		b[mid], b[mid-1] = b[mid-1], b[mid]
		words[i] = string(b)
	}
	return strings.Join(words, " ")
}

func perturbFormatting(question string) string {
	words := strings.Fields(question)
	for i, w := range words {
		if i%3 == 0 {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, "  ")
}

func perturbSynonyms(question string) string {
	words := strings.Fields(question)
	for i, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,;:!?"))
		if syn, ok := synonymMap[key]; ok {
			words[i] = strings.Replace(w, strings.Trim(w, ".,;:!?"), syn, 1)
		}
	}
	return strings.Join(words, " ")
}
