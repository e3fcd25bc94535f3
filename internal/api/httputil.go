package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/cognicore/paperiq/pkg/paperiq/sentiment"
)

// MsgTextTooShort is the client-facing message for input below the minimum length.
const MsgTextTooShort = "Text too short. Provide at least 20 characters."

// HTTPError carries a status code and a client-facing message.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// statusOf maps an error to a status code and client-facing message.
func statusOf(err error) (int, string) {
	var httpErr *HTTPError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Message
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "Upload too large"
	case errors.Is(err, internalerr.ErrTextTooShort):
		return http.StatusBadRequest, MsgTextTooShort
	case errors.Is(err, internalerr.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, internalerr.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, internalerr.ErrArchiveDisabled):
		return http.StatusNotImplemented, "Report archive is disabled"
	case errors.Is(err, sentiment.ErrUnavailable):
		return http.StatusBadGateway, "sentiment unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Analysis timed out"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// HandleError writes err as a JSON error body.
func HandleError(w http.ResponseWriter, err error) {
	code, msg := statusOf(err)
	JSONError(w, code, msg)
}

func JSONResponse(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func JSONError(w http.ResponseWriter, status int, message string) error {
	return JSONResponse(w, status, map[string]string{
		"error": message,
	})
}

// DecodeJSON decodes a JSON request body into v.
func DecodeJSON(r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return &HTTPError{
			Code:    http.StatusUnsupportedMediaType,
			Message: "Content-Type must be application/json",
		}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return &HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid JSON payload: " + err.Error(),
		}
	}
	return nil
}
