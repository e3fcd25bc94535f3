package paperiq

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/paperiq/pkg/paperiq/features"
	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/cognicore/paperiq/pkg/paperiq/rank"
	"github.com/cognicore/paperiq/pkg/paperiq/score"
	"github.com/cognicore/paperiq/pkg/paperiq/segment"
	"github.com/cognicore/paperiq/pkg/paperiq/sentiment"
	"golang.org/x/sync/errgroup"
)

// MinTextLength is the minimum trimmed length, in characters, callers should
// require before analysing text.
const MinTextLength = 20

// DefaultTopFlagged is how many flagged sentences a report carries by default.
const DefaultTopFlagged = 5

// Analyzer is the writing-quality engine facade
type Analyzer struct {
	oracle     sentiment.Oracle
	topFlagged int
	sequential bool
}

// Options configures an Analyzer
type Options struct {
	Oracle     sentiment.Oracle
	TopFlagged int  // defaults to DefaultTopFlagged
	Sequential bool // run the scoring, flagging and sentiment stages one after another
}

// New creates an Analyzer. A nil oracle falls back to the bundled lexicon.
func New(opts Options) *Analyzer {
	oracle := opts.Oracle
	if oracle == nil {
		oracle = sentiment.NewLexiconOracle(nil)
	}
	top := opts.TopFlagged
	if top <= 0 {
		top = DefaultTopFlagged
	}
	return &Analyzer{
		oracle:     oracle,
		topFlagged: top,
		sequential: opts.Sequential,
	}
}

// Report is the full result of analysing one document.
type Report struct {
	Composite           float64                     `json:"composite"`
	Language            float64                     `json:"language"`
	Coherence           float64                     `json:"coherence"`
	Reasoning           float64                     `json:"reasoning"`
	Diagnostics         features.Vector             `json:"diagnostics"`
	TopFlaggedSentences []string                    `json:"top_flagged_sentences"`
	SentimentAnalysis   []sentiment.SentenceReading `json:"sentiment_analysis"`
}

// Scores returns the score set carried by the report.
func (r Report) Scores() score.Set {
	return score.Set{
		Language:  r.Language,
		Coherence: r.Coherence,
		Reasoning: r.Reasoning,
		Composite: r.Composite,
	}
}

// Analyze runs the full pipeline on text. The only failures are the sentiment
// oracle being unavailable (matching sentiment.ErrUnavailable) and ctx ending.
// Degenerate input is not an error; callers enforce ValidateInput themselves.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Report, error) {
	doc := segment.Segment(text)
	vec := features.Extract(doc)

	var (
		scores  score.Set
		ranked  []rank.Contribution
		reading sentiment.Annotation
	)

	stages := []func(context.Context) error{
		func(context.Context) error {
			scores = score.Score(vec)
			return nil
		},
		func(context.Context) error {
			ranked = rank.Sentences(doc.Sentences, vec)
			return nil
		},
		func(ctx context.Context) error {
			var err error
			reading, err = sentiment.Annotate(ctx, text, doc.Sentences, a.oracle)
			return err
		},
	}

	if a.sequential {
		for _, stage := range stages {
			if err := stage(ctx); err != nil {
				return Report{}, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for _, stage := range stages {
			g.Go(func() error { return stage(gctx) })
		}
		if err := g.Wait(); err != nil {
			return Report{}, err
		}
	}

	vec.SentimentPolarity = reading.Document.Polarity
	vec.SentimentSubjectivity = reading.Document.Subjectivity

	return Report{
		Composite:           scores.Composite,
		Language:            scores.Language,
		Coherence:           scores.Coherence,
		Reasoning:           scores.Reasoning,
		Diagnostics:         vec,
		TopFlaggedSentences: rank.Top(ranked, a.topFlagged),
		SentimentAnalysis:   reading.Sentences,
	}, nil
}

// Flagged returns the full sentence ranking of text without sentiment.
func (a *Analyzer) Flagged(text string) []rank.Contribution {
	doc := segment.Segment(text)
	return rank.Sentences(doc.Sentences, features.Extract(doc))
}

// ValidateInput enforces the caller-side precondition: at least
// MinTextLength characters once surrounding whitespace is trimmed.
func ValidateInput(text string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < MinTextLength {
		return fmt.Errorf("%w: %d characters, need %d", internalerr.ErrTextTooShort, n, MinTextLength)
	}
	return nil
}
