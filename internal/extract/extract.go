// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/tsawler/tabula"
)

// Format names the detected input format.
type Format string

const (
	PDF      Format = "pdf"
	DOCX     Format = "docx"
	ODT      Format = "odt"
	HTML     Format = "html"
	Markdown Format = "markdown"
	Plain    Format = "text"
)

// Result is the text of a document plus any non-fatal extraction warnings.
type Result struct {
	Text     string   `json:"-"`
	Format   Format   `json:"format"`
	Warnings []string `json:"warnings,omitempty"`
}

// Detect maps a file name to a format by extension.
func Detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".md", ".markdown":
		return Markdown
	default:
		return Plain
	}
}

// File extracts the text of the document at path.
func File(path string) (Result, error) {
	switch f := Detect(path); f {
	case PDF, DOCX, ODT:
		return binary(path, f)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, err
		}
		return fromText(path, data)
	}
}

// Bytes extracts the text of an in-memory document; name selects the format.
func Bytes(name string, data []byte) (Result, error) {
	f := Detect(name)
	switch f {
	case PDF, DOCX, ODT:
	default:
		return fromText(name, data)
	}

	// tabula reads from disk.
	tmp, err := os.CreateTemp("", "paperiq-*"+filepath.Ext(name))
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		return Result{}, err
	}
	return binary(tmp.Name(), f)
}

func binary(path string, f Format) (Result, error) {
	text, warnings, err := tabula.Open(path).Text()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", internalerr.ErrUnsupportedFormat, f, err)
	}
	res := Result{Text: text, Format: f}
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w.Message)
	}
	return res, nil
}

func fromText(name string, data []byte) (Result, error) {
	if !utf8.Valid(data) {
		return Result{}, fmt.Errorf("%w: %s is not UTF-8 text", internalerr.ErrUnsupportedFormat, filepath.Base(name))
	}
	switch f := Detect(name); f {
	case HTML:
		text, err := htmlText(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Format: HTML}, nil
	case Markdown:
		return Result{Text: markdownText(data), Format: Markdown}, nil
	default:
		return Result{Text: string(data), Format: Plain}, nil
	}
}
