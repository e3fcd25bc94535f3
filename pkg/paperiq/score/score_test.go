package score

import (
	"math"
	"strings"
	"testing"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
	"github.com/cognicore/paperiq/pkg/paperiq/segment"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreZero(t *testing.T) {
	got := Score(features.Vector{})
	if got != (Set{}) {
		t.Fatalf("Score(zero) = %+v, want all zero", got)
	}
}

func TestScoreWeights(t *testing.T) {
	got := Score(features.Vector{
		TTR:            0.5,
		LexSoph:        0.2,
		AvgWordLen:     4,
		Coherence:      0.9,
		ReasoningProxy: 0.5,
	})
	want := Set{Language: 73, Coherence: 90, Reasoning: 50, Composite: 71.2}
	if !approx(got.Language, want.Language) || !approx(got.Coherence, want.Coherence) ||
		!approx(got.Reasoning, want.Reasoning) || !approx(got.Composite, want.Composite) {
		t.Fatalf("Score = %+v, want %+v", got, want)
	}
}

func TestScoreSaturates(t *testing.T) {
	got := Score(features.Vector{
		TTR:            1,
		LexSoph:        1,
		AvgWordLen:     25,
		Coherence:      1,
		ReasoningProxy: 1,
	})
	want := Set{Language: 100, Coherence: 100, Reasoning: 100, Composite: 100}
	if got != want {
		t.Fatalf("Score = %+v, want %+v", got, want)
	}
}

func TestCompositeUsesUnroundedSubScores(t *testing.T) {
	v := features.Vector{TTR: 1.0 / 3.0, LexSoph: 1.0 / 7.0, AvgWordLen: 4.123, Coherence: 0.77777, ReasoningProxy: 0.61111}
	got := Score(v)
	lang := Language(v)
	want := Round2(LanguageWeight*lang + CoherenceWeight*100*v.Coherence + ReasoningWeight*100*v.ReasoningProxy)
	if got.Composite != want {
		t.Fatalf("Composite = %v, want %v", got.Composite, want)
	}
}

func TestScoreBounds(t *testing.T) {
	vectors := []features.Vector{
		{TTR: 0.01, LexSoph: 0.99, AvgWordLen: 100, Coherence: 0, ReasoningProxy: 1},
		{TTR: 1, LexSoph: 0, AvgWordLen: 0.5, Coherence: 1, ReasoningProxy: 0},
		{TTR: 0.7, LexSoph: 0.33, AvgWordLen: 5, Coherence: 0.5, ReasoningProxy: 0.5},
	}
	for _, v := range vectors {
		s := Score(v)
		for name, val := range map[string]float64{
			"language":  s.Language,
			"coherence": s.Coherence,
			"reasoning": s.Reasoning,
			"composite": s.Composite,
		} {
			if val < 0 || val > 100 {
				t.Errorf("%s out of range for %+v: %v", name, v, val)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(12.3456); got != 12.35 {
		t.Errorf("Round2(12.3456) = %v", got)
	}
	if got := Round2(0.004); got != 0 {
		t.Errorf("Round2(0.004) = %v", got)
	}
}

func TestRound2HalfToEven(t *testing.T) {
	cases := map[float64]float64{
		53.125: 53.12,
		0.125:  0.12,
		0.375:  0.38,
		-2.5:   -2.5,
		100:    100,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestReasoningHalfCentRoundsToEven(t *testing.T) {
	text := "Therefore it holds." + strings.Repeat(" It holds.", 30)
	v := features.Extract(segment.Segment(text))
	if v.ReasoningProxy != 0.53125 {
		t.Fatalf("ReasoningProxy = %v, want 0.53125", v.ReasoningProxy)
	}
	if got := Score(v).Reasoning; got != 53.12 {
		t.Errorf("Reasoning = %v, want 53.12", got)
	}
}

func TestLongerWordsDoNotLowerLanguage(t *testing.T) {
	short := features.Extract(segment.Segment("The cat sat on a mat."))
	long := features.Extract(segment.Segment("The leopard rested on a carpet."))
	if long.AvgWordLen <= short.AvgWordLen {
		t.Fatalf("AvgWordLen should increase: %v <= %v", long.AvgWordLen, short.AvgWordLen)
	}
	if Language(long) < Language(short) {
		t.Errorf("Language dropped with longer words: %v < %v", Language(long), Language(short))
	}
	if Score(long).Language < Score(short).Language {
		t.Errorf("rounded Language dropped: %v < %v", Score(long).Language, Score(short).Language)
	}
}
