package apperror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorInfo is the uniform error shape surfaced to API consumers. Whatever the
// datastore client, the auth provider or plain Go code throws at us, callers
// always get at least Message.
type ErrorInfo struct {
	Message    string            `json:"message"`
	Code       string            `json:"code,omitempty"`
	Details    string            `json:"details,omitempty"`
	Hint       string            `json:"hint,omitempty"`
	Status     int               `json:"status,omitempty"`
	StatusText string            `json:"status_text,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// ToErrorInfo normalizes any error value into an ErrorInfo. It never panics
// and never returns nil.
func ToErrorInfo(err error, extra map[string]string) *ErrorInfo {
	info := &ErrorInfo{Message: "Unbekannter Fehler"}
	if len(extra) > 0 {
		info.Extra = extra
	}
	if err == nil {
		return info
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		info.Message = pgErr.Message
		info.Code = pgErr.Code
		info.Details = pgErr.Detail
		info.Hint = pgErr.Hint
		if info.Message == "" {
			info.Message = "Datenbankfehler"
		}
		return info
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		info.Message = appErr.Message
		info.Status = appErr.Code
		info.StatusText = http.StatusText(appErr.Code)
		if appErr.Info != nil {
			info.Code = appErr.Info.Code
			info.Details = appErr.Info.Details
			info.Hint = appErr.Info.Hint
		}
		return info
	}

	if msg := err.Error(); msg != "" {
		info.Message = msg
	}
	return info
}
