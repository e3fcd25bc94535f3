// Package feedback turns diagnostic features into short writing advice.
package feedback

import (
	"fmt"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
)

// Level grades a note.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Ideal average sentence length, in words.
const (
	IdealSentenceMin = 15
	IdealSentenceMax = 25
)

// Note is one piece of advice about a metric.
type Note struct {
	Metric  string `json:"metric"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Tone thresholds on the document sentiment.
const (
	PositiveTone   = 0.3
	NegativeTone   = -0.3
	HighSubjective = 0.7
	LowSubjective  = 0.3
)

// Advise grades sentence length, vocabulary diversity, coherence and the
// tone of the document. Sentence length is skipped when the text has no
// sentences.
func Advise(v features.Vector) []Note {
	var notes []Note

	if v.SentenceCount > 0 {
		notes = append(notes, sentenceLength(v.AvgSentenceLen))
	}
	notes = append(notes,
		diversity(v.TTR),
		coherence(v.Coherence),
		polarity(v.SentimentPolarity),
		subjectivity(v.SentimentSubjectivity),
	)
	return notes
}

func sentenceLength(avg float64) Note {
	n := Note{Metric: "avg_sentence_len"}
	switch {
	case avg < IdealSentenceMin:
		n.Level = Warning
		n.Message = fmt.Sprintf("Average sentence length is %.1f words; consider combining shorter sentences.", avg)
	case avg > IdealSentenceMax:
		n.Level = Warning
		n.Message = fmt.Sprintf("Average sentence length is %.1f words; consider breaking down longer sentences.", avg)
	default:
		n.Level = Success
		n.Message = fmt.Sprintf("Average sentence length of %.1f words is in the ideal range.", avg)
	}
	return n
}

func diversity(ttr float64) Note {
	n := Note{Metric: "ttr"}
	switch {
	case ttr > 0.7:
		n.Level = Success
		n.Message = "Excellent vocabulary diversity."
	case ttr > 0.5:
		n.Level = Info
		n.Message = "Good vocabulary diversity; some words repeat."
	default:
		n.Level = Warning
		n.Message = "Low vocabulary diversity; vary your word choice."
	}
	return n
}

func coherence(c float64) Note {
	n := Note{Metric: "coherence"}
	switch {
	case c > 0.8:
		n.Level = Success
		n.Message = "Sentence structure is consistent and easy to follow."
	case c > 0.6:
		n.Level = Info
		n.Message = "Sentence structure is fairly consistent."
	default:
		n.Level = Warning
		n.Message = "Sentence lengths vary a lot; aim for a steadier rhythm."
	}
	return n
}

func polarity(p float64) Note {
	n := Note{Metric: "sentiment_polarity"}
	switch {
	case p > PositiveTone:
		n.Level = Success
		n.Message = "The text has a positive tone."
	case p < NegativeTone:
		n.Level = Error
		n.Message = "The text has a negative tone."
	default:
		n.Level = Info
		n.Message = "The text has a neutral tone."
	}
	return n
}

// subjectivity is informational at every level.
func subjectivity(s float64) Note {
	n := Note{Metric: "sentiment_subjectivity", Level: Info}
	switch {
	case s > HighSubjective:
		n.Message = "The text is highly subjective."
	case s < LowSubjective:
		n.Message = "The text is mostly objective."
	default:
		n.Message = "The text has a balanced subjective/objective tone."
	}
	return n
}
