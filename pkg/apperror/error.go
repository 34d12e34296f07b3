package apperror

import "net/http"

type AppError struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Info    *ErrorInfo `json:"info,omitempty"`
	Err     error      `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func Internal(err error) *AppError {
	e := New(http.StatusInternalServerError, "Internal Server Error", err)
	e.Info = ToErrorInfo(err, nil)
	return e
}

// Datastore wraps a raw datastore error with a normalized ErrorInfo so callers
// can render a uniform shape without inspecting driver types.
func Datastore(operation string, err error) *AppError {
	e := New(http.StatusInternalServerError, "Datenbankfehler: "+operation, err)
	e.Info = ToErrorInfo(err, map[string]string{"operation": operation})
	return e
}
