package feedback

import (
	"testing"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
)

func levels(notes []Note) map[string]Level {
	out := make(map[string]Level, len(notes))
	for _, n := range notes {
		out[n.Metric] = n.Level
	}
	return out
}

func TestAdviseThresholds(t *testing.T) {
	cases := []struct {
		name string
		v    features.Vector
		want map[string]Level
	}{
		{
			name: "ideal",
			v:    features.Vector{SentenceCount: 3, AvgSentenceLen: 20, TTR: 0.8, Coherence: 0.9},
			want: map[string]Level{"avg_sentence_len": Success, "ttr": Success, "coherence": Success},
		},
		{
			name: "middling",
			v:    features.Vector{SentenceCount: 3, AvgSentenceLen: 10, TTR: 0.6, Coherence: 0.7},
			want: map[string]Level{"avg_sentence_len": Warning, "ttr": Info, "coherence": Info},
		},
		{
			name: "weak",
			v:    features.Vector{SentenceCount: 3, AvgSentenceLen: 30, TTR: 0.5, Coherence: 0.6},
			want: map[string]Level{"avg_sentence_len": Warning, "ttr": Warning, "coherence": Warning},
		},
		{
			name: "bounds are ideal",
			v:    features.Vector{SentenceCount: 1, AvgSentenceLen: 15, TTR: 0.71, Coherence: 0.81},
			want: map[string]Level{"avg_sentence_len": Success, "ttr": Success, "coherence": Success},
		},
	}
	for _, tc := range cases {
		got := levels(Advise(tc.v))
		for metric, want := range tc.want {
			if got[metric] != want {
				t.Errorf("%s: %s = %q, want %q", tc.name, metric, got[metric], want)
			}
		}
	}
}

func TestAdviseSkipsSentenceLengthWithoutSentences(t *testing.T) {
	notes := Advise(features.Vector{})
	if len(notes) != 4 {
		t.Fatalf("expected 4 notes, got %d", len(notes))
	}
	if _, ok := levels(notes)["avg_sentence_len"]; ok {
		t.Error("sentence length advice should be skipped for empty text")
	}
}

func TestAdviseTone(t *testing.T) {
	cases := []struct {
		polarity, subjectivity float64
		wantLevel              Level
		wantPolarity           string
		wantSubjectivity       string
	}{
		{0.5, 0.8, Success, "The text has a positive tone.", "The text is highly subjective."},
		{-0.5, 0.1, Error, "The text has a negative tone.", "The text is mostly objective."},
		{0.3, 0.5, Info, "The text has a neutral tone.", "The text has a balanced subjective/objective tone."},
		{-0.3, 0.7, Info, "The text has a neutral tone.", "The text has a balanced subjective/objective tone."},
		{0, 0.3, Info, "The text has a neutral tone.", "The text has a balanced subjective/objective tone."},
	}
	for _, tc := range cases {
		notes := Advise(features.Vector{
			SentenceCount:         1,
			AvgSentenceLen:        20,
			SentimentPolarity:     tc.polarity,
			SentimentSubjectivity: tc.subjectivity,
		})
		byMetric := make(map[string]Note, len(notes))
		for _, n := range notes {
			byMetric[n.Metric] = n
		}

		pol := byMetric["sentiment_polarity"]
		if pol.Level != tc.wantLevel || pol.Message != tc.wantPolarity {
			t.Errorf("polarity %v: got %s %q", tc.polarity, pol.Level, pol.Message)
		}
		subj := byMetric["sentiment_subjectivity"]
		if subj.Level != Info || subj.Message != tc.wantSubjectivity {
			t.Errorf("subjectivity %v: got %s %q", tc.subjectivity, subj.Level, subj.Message)
		}
	}
}
