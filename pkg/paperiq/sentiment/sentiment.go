// Package sentiment attaches polarity and subjectivity readings to a document
// and its sentences.
//
// Readings come from an Oracle, a capability boundary: the annotator never
// interprets or adjusts what the oracle returns. LexiconOracle is the bundled
// offline implementation; remote oracles live elsewhere and satisfy the same
// interface.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable marks a failed oracle call. A zero polarity is a valid
// reading, so failures are never reported as zeros.
var ErrUnavailable = errors.New("sentiment unavailable")

// Oracle returns polarity in [-1,1] and subjectivity in [0,1] for a
// non-empty text span.
type Oracle interface {
	PolarityAndSubjectivity(ctx context.Context, text string) (polarity, subjectivity float64, err error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, text string) (float64, float64, error)

// PolarityAndSubjectivity implements Oracle.
func (f OracleFunc) PolarityAndSubjectivity(ctx context.Context, text string) (float64, float64, error) {
	return f(ctx, text)
}

// Reading is one oracle result.
type Reading struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SentenceReading is the reading of a single sentence.
type SentenceReading struct {
	Text         string  `json:"text"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Annotation holds the document reading and one reading per sentence, in
// sentence order.
type Annotation struct {
	Document  Reading
	Sentences []SentenceReading
}

// UnavailableError reports which span the oracle failed on. Span is the
// sentence index, or -1 for the whole document.
type UnavailableError struct {
	Span int
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Span < 0 {
		return fmt.Sprintf("%v: document: %v", ErrUnavailable, e.Err)
	}
	return fmt.Sprintf("%v: sentence %d: %v", ErrUnavailable, e.Span, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is matches ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Annotate queries the oracle once for the whole text and once per sentence,
// in order. The first failure aborts the annotation; calls are not retried.
// A blank document is not sent to the oracle and reads as zero.
func Annotate(ctx context.Context, text string, sentences []string, oracle Oracle) (Annotation, error) {
	var ann Annotation

	if strings.TrimSpace(text) != "" {
		if err := ctx.Err(); err != nil {
			return Annotation{}, err
		}
		pol, subj, err := oracle.PolarityAndSubjectivity(ctx, text)
		if err != nil {
			return Annotation{}, &UnavailableError{Span: -1, Err: err}
		}
		ann.Document = Reading{Polarity: pol, Subjectivity: subj}
	}

	ann.Sentences = make([]SentenceReading, 0, len(sentences))
	for i, s := range sentences {
		if err := ctx.Err(); err != nil {
			return Annotation{}, err
		}
		pol, subj, err := oracle.PolarityAndSubjectivity(ctx, s)
		if err != nil {
			return Annotation{}, &UnavailableError{Span: i, Err: err}
		}
		ann.Sentences = append(ann.Sentences, SentenceReading{
			Text:         s,
			Polarity:     pol,
			Subjectivity: subj,
		})
	}

	return ann, nil
}
