// Package api serves text analysis over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cognicore/paperiq/internal/extract"
	"github.com/cognicore/paperiq/internal/report"
	"github.com/cognicore/paperiq/pkg/paperiq"
	"github.com/cognicore/paperiq/pkg/paperiq/archive"
	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes bounds request bodies when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// Handler serves the analysis and archive endpoints.
type Handler struct {
	logger         *zap.Logger
	analyzer       *paperiq.Analyzer
	archive        archive.Archive
	maxUploadBytes int64
	timeout        time.Duration
}

// Options configures a Handler. Archive may be nil.
type Options struct {
	Logger         *zap.Logger
	Analyzer       *paperiq.Analyzer
	Archive        archive.Archive
	MaxUploadBytes int64
	// Timeout bounds a single analysis, oracle calls included. Zero means none.
	Timeout time.Duration
}

// NewHandler builds a Handler, filling in a no-op logger and the default
// upload limit when unset.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Handler{
		logger:         logger,
		analyzer:       opts.Analyzer,
		archive:        opts.Archive,
		maxUploadBytes: maxUpload,
		timeout:        opts.Timeout,
	}
}

// HandleAnalyze analyzes the text of a JSON AnalyzeRequest.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var req AnalyzeRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "decode request", err)
		return
	}
	h.analyze(w, r, req.Text, "text")
}

// HandleUpload extracts the text of the multipart "file" field and analyzes it.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		h.fail(w, r, "parse upload", &HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "Upload too large"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if !errors.As(err, &maxBytes) {
			err = &HTTPError{Code: http.StatusBadRequest, Message: "Expected a multipart form with a file field"}
		}
		h.fail(w, r, "parse upload", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, "read upload", &HTTPError{Code: http.StatusBadRequest, Message: "Missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(w, r, "read upload", err)
		return
	}

	doc, err := extract.Bytes(header.Filename, data)
	if err != nil {
		h.fail(w, r, "extract text", err)
		return
	}
	for _, warning := range doc.Warnings {
		h.logger.Warn("extraction warning",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("file", header.Filename),
			zap.String("warning", warning),
		)
	}

	h.analyze(w, r, doc.Text, header.Filename)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, text, source string) {
	if err := paperiq.ValidateInput(text); err != nil {
		h.fail(w, r, "validate input", err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rep, err := h.analyzer.Analyze(ctx, text)
	if err != nil {
		h.fail(w, r, "analyze", err)
		return
	}

	out := report.NewAnalysis(rep, source)
	if h.archive != nil {
		rec, err := h.archive.Save(ctx, archive.Record{Source: source, Report: rep})
		if err != nil {
			h.logger.Error("archive report", zap.String("request_id", RequestID(ctx)), zap.Error(err))
		} else {
			out.ID = rec.ID
		}
	}

	h.logger.Debug("analyzed",
		zap.String("request_id", RequestID(ctx)),
		zap.String("source", source),
		zap.Int("words", rep.Diagnostics.WordCount),
		zap.Float64("composite", rep.Composite),
	)
	h.respond(w, r, out)
}

// HandleGetReport returns one archived analysis by ID.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.fail(w, r, "get report", internalerr.ErrArchiveDisabled)
		return
	}
	id := r.PathValue("id")
	rec, found, err := h.archive.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get report", err)
		return
	}
	if !found {
		h.fail(w, r, "get report", fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound))
		return
	}

	out := report.NewAnalysis(rec.Report, rec.Source)
	out.ID = rec.ID
	h.respond(w, r, out)
}

// HandleListReports returns archived summaries, newest first, capped by the
// optional limit query parameter.
func (h *Handler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.fail(w, r, "list reports", internalerr.ErrArchiveDisabled)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.fail(w, r, "list reports", &HTTPError{Code: http.StatusBadRequest, Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	summaries, err := h.archive.List(r.Context(), limit)
	if err != nil {
		h.fail(w, r, "list reports", err)
		return
	}
	h.respond(w, r, summaries)
}

// HandleHealth reports liveness and whether archiving is enabled.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, map[string]any{
		"status":  "ok",
		"archive": h.archive != nil,
	})
}

// respond writes a 200 JSON body. Encoding errors can only be logged: the
// status line is already sent.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data any) {
	if err := JSONResponse(w, http.StatusOK, data); err != nil {
		h.logger.Warn("write response",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code, _ := statusOf(err)
	fields := []zap.Field{
		zap.String("request_id", RequestID(r.Context())),
		zap.String("op", op),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= 500 {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}
	HandleError(w, err)
}
