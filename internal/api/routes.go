package api

import (
	"net/http"

	"github.com/cognicore/paperiq/pkg/paperiq/archive"
)

func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /analyze", handler.HandleAnalyze)
	mux.HandleFunc("POST /analyze/upload", handler.HandleUpload)
	mux.HandleFunc("GET /reports", handler.HandleListReports)
	mux.HandleFunc("GET /reports/{id}", handler.HandleGetReport)
	mux.HandleFunc("GET /health", handler.HandleHealth)
}

// NewRouter wires the routes of handler behind the request-ID and logging
// middleware.
func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, handler)
	return WithRequestID(archive.NewIDs(), WithLogging(handler.logger, mux))
}
