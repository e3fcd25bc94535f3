package report

import (
	"encoding/json"
	"io"

	"github.com/cognicore/paperiq/pkg/paperiq/archive"
)

// JSON outputs results as indented JSON
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON renderer
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (r *JSON) Render(a Analysis) error {
	return r.encode(a)
}

func (r *JSON) RenderList(summaries []archive.Summary) error {
	if summaries == nil {
		summaries = []archive.Summary{}
	}
	return r.encode(summaries)
}

func (r *JSON) encode(v any) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
