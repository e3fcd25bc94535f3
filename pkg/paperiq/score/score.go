// Package score maps a feature vector to language, coherence and reasoning
// sub-scores and a weighted composite, each in [0,100].
package score

import (
	"math"
	"strconv"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
)

// Weights of the sub-scores in the composite.
const (
	LanguageWeight  = 0.4
	CoherenceWeight = 0.3
	ReasoningWeight = 0.3
)

// Set is the scored outcome of one document, rounded to two decimals.
type Set struct {
	Language  float64 `json:"language"`
	Coherence float64 `json:"coherence"`
	Reasoning float64 `json:"reasoning"`
	Composite float64 `json:"composite"`
}

// Score computes the sub-scores and composite for v. The composite is
// weighted over the unrounded sub-scores.
func Score(v features.Vector) Set {
	lang := Language(v)
	coh := 100 * v.Coherence
	reason := 100 * v.ReasoningProxy

	return Set{
		Language:  Round2(lang),
		Coherence: Round2(coh),
		Reasoning: Round2(reason),
		Composite: Round2(LanguageWeight*lang + CoherenceWeight*coh + ReasoningWeight*reason),
	}
}

// Language blends vocabulary diversity, sophistication and word length.
// Each term saturates at 1 so the result stays within [0,100].
func Language(v features.Vector) float64 {
	diversity := math.Min(1, v.TTR*1.5)
	sophistication := math.Min(1, v.LexSoph*3)
	wordLen := math.Min(1, v.AvgWordLen/5)
	return 100 * (0.2*diversity + 0.3*sophistication + 0.5*wordLen)
}

// Round2 rounds x to two decimal places. An exact binary half goes to the
// even digit, so 53.125 becomes 53.12.
func Round2(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return v
}
