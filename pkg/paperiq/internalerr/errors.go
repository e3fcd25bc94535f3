package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrTextTooShort      = errors.New("text too short")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrArchiveDisabled   = errors.New("report archive disabled")
)
