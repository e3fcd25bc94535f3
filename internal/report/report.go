// Package report renders analysis results for the command line.
package report

import (
	"fmt"
	"io"

	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/cognicore/paperiq/pkg/paperiq/feedback"
)

// Analysis is a report plus the advice derived from it. It is also the JSON
// body of the HTTP analyze endpoints.
type Analysis struct {
	paperiq.Report
	Feedback []feedback.Note `json:"feedback"`
	ID       string          `json:"id,omitempty"`
	Source   string          `json:"source,omitempty"`
}

// NewAnalysis attaches feedback to r.
func NewAnalysis(r paperiq.Report, source string) Analysis {
	return Analysis{Report: r, Feedback: feedback.Advise(r.Diagnostics), Source: source}
}

// Renderer writes analyses and archive listings.
type Renderer interface {
	Render(a Analysis) error
	RenderList(summaries []archive.Summary) error
}

// New picks a renderer by format name: "terminal" (default) or "json".
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "", "terminal", "text":
		return NewTerminal(w, NewStyles(IsTerminal(w))), nil
	case "json":
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
