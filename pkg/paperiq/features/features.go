// Package features computes the document-level linguistic feature vector.
package features

import (
	"math"

	"github.com/cognicore/paperiq/pkg/paperiq/segment"
)

// LongWordThreshold is the character length a word must exceed to count as
// sophisticated vocabulary.
const LongWordThreshold = 6

// Vector holds the numeric features of one document. Ratio fields lie in
// [0,1]; sentiment fields are filled by the sentiment annotator.
type Vector struct {
	WordCount             int     `json:"word_count"`
	SentenceCount         int     `json:"sentence_count"`
	AvgSentenceLen        float64 `json:"avg_sentence_len"`
	AvgWordLen            float64 `json:"avg_word_len"`
	TTR                   float64 `json:"ttr"`
	LexSoph               float64 `json:"lex_soph"`
	Coherence             float64 `json:"coherence"`
	ReasoningProxy        float64 `json:"reasoning_proxy"`
	SentimentPolarity     float64 `json:"sentiment_polarity"`
	SentimentSubjectivity float64 `json:"sentiment_subjectivity"`
}

// Map returns the vector keyed by feature name.
func (v Vector) Map() map[string]float64 {
	return map[string]float64{
		"word_count":             float64(v.WordCount),
		"sentence_count":         float64(v.SentenceCount),
		"avg_sentence_len":       v.AvgSentenceLen,
		"avg_word_len":           v.AvgWordLen,
		"ttr":                    v.TTR,
		"lex_soph":               v.LexSoph,
		"coherence":              v.Coherence,
		"reasoning_proxy":        v.ReasoningProxy,
		"sentiment_polarity":     v.SentimentPolarity,
		"sentiment_subjectivity": v.SentimentSubjectivity,
	}
}

// Names lists feature names in display order.
func Names() []string {
	return []string{
		"word_count",
		"sentence_count",
		"avg_sentence_len",
		"avg_word_len",
		"ttr",
		"lex_soph",
		"coherence",
		"reasoning_proxy",
		"sentiment_polarity",
		"sentiment_subjectivity",
	}
}

// Extract computes every non-sentiment feature of a segmented document.
func Extract(doc segment.Document) Vector {
	lens := SentenceLengths(doc.Sentences)
	return Vector{
		WordCount:      len(doc.Words),
		SentenceCount:  len(doc.Sentences),
		AvgSentenceLen: mean(lens),
		AvgWordLen:     AvgWordLen(doc.Words),
		TTR:            TypeTokenRatio(doc.Words),
		LexSoph:        LexicalSophistication(doc.Words),
		Coherence:      Coherence(lens),
		ReasoningProxy: ReasoningProxy(doc.Sentences, doc.Words),
	}
}

// SentenceLengths returns the word-token count of each sentence.
func SentenceLengths(sentences []string) []int {
	lens := make([]int, len(sentences))
	for i, s := range sentences {
		lens[i] = len(segment.Words(s))
	}
	return lens
}

// AvgWordLen is the mean character length of words.
func AvgWordLen(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += segment.CharLen(w)
	}
	return float64(total) / float64(len(words))
}

// TypeTokenRatio is the share of distinct words among all words.
func TypeTokenRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	return float64(distinct(words)) / float64(len(words))
}

// LexicalSophistication is the share of words longer than LongWordThreshold.
func LexicalSophistication(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	long := 0
	for _, w := range words {
		if segment.CharLen(w) > LongWordThreshold {
			long++
		}
	}
	return float64(long) / float64(len(words))
}

// Coherence scores the regularity of sentence lengths:
// max(0, 1 - variance/(mean+1)^2) over the population variance.
func Coherence(lens []int) float64 {
	if len(lens) == 0 {
		return 0
	}
	m := mean(lens)
	var sq float64
	for _, l := range lens {
		d := float64(l) - m
		sq += d * d
	}
	variance := sq / float64(len(lens))
	return math.Max(0, 1-variance/((m+1)*(m+1)))
}

// ReasoningProxy balances causal sentences against modal hedges, centred
// at 0.5 and clamped to [0,1]. A document without sentences scores 0; one
// with sentences but no words sits at the 0.5 centre.
func ReasoningProxy(sentences, words []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	causal := 0
	for _, s := range sentences {
		if HasCausalMarker(s) {
			causal++
		}
	}
	modal := 0
	for _, w := range words {
		if IsModalHedge(w) {
			modal++
		}
	}
	raw := float64(causal)/float64(len(sentences)+1) - float64(modal)/float64(len(words)+1)
	return clamp01(0.5 + raw)
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	total := 0
	for _, v := range vals {
		total += v
	}
	return float64(total) / float64(len(vals))
}

func distinct(words []string) int {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return len(set)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
