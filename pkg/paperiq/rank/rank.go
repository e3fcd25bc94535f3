// Package rank orders sentences by their estimated contribution to a low
// writing-quality score.
package rank

import (
	"math"
	"sort"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
	"github.com/cognicore/paperiq/pkg/paperiq/segment"
)

// MinLongSentence is the floor of the long-sentence threshold in words.
const MinLongSentence = 40

// Penalty weights
//
// penalty = 1.2·is_long + 1.0·(1 - ttr_s) + 0.5·(1 - has_causal)
const (
	LongWeight       = 1.2
	RepetitionWeight = 1.0
	NoCausalWeight   = 0.5
)

// Breakdown itemises the penalty of one sentence.
type Breakdown struct {
	Long       float64 `json:"long"`
	Repetition float64 `json:"repetition"`
	NoCausal   float64 `json:"no_causal"`
}

// Contribution pairs a sentence with its penalty. Penalties are only
// meaningful relative to each other.
type Contribution struct {
	Sentence  string    `json:"sentence"`
	Penalty   float64   `json:"penalty"`
	Breakdown Breakdown `json:"breakdown"`
}

// Sentences scores every sentence against the document features and returns
// them sorted by penalty, highest first. Ties keep document order.
func Sentences(sentences []string, doc features.Vector) []Contribution {
	threshold := LongThreshold(doc)
	out := make([]Contribution, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, Sentence(s, threshold))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Penalty > out[j].Penalty
	})
	return out
}

// LongThreshold is the word count above which a sentence counts as long:
// max(40, 2·avg_sentence_len).
func LongThreshold(doc features.Vector) float64 {
	return math.Max(MinLongSentence, doc.AvgSentenceLen*2)
}

// Sentence scores a single sentence. A sentence without words has no penalty.
func Sentence(sentence string, longThreshold float64) Contribution {
	words := segment.Words(sentence)
	c := Contribution{Sentence: sentence}
	if len(words) == 0 {
		return c
	}

	if float64(len(words)) > longThreshold {
		c.Breakdown.Long = LongWeight
	}
	c.Breakdown.Repetition = RepetitionWeight * (1 - features.TypeTokenRatio(words))
	if !features.HasCausalMarker(sentence) {
		c.Breakdown.NoCausal = NoCausalWeight
	}
	c.Penalty = c.Breakdown.Long + c.Breakdown.Repetition + c.Breakdown.NoCausal
	return c
}

// Top returns the text of the first n contributions.
func Top(contribs []Contribution, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(contribs) {
		n = len(contribs)
	}
	out := make([]string, 0, n)
	for _, c := range contribs[:n] {
		out = append(out, c.Sentence)
	}
	return out
}
