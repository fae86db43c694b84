package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors returned by repositories and the widget service.
var (
	ErrWidgetNotFound = errors.New("widget_not_found")

	// Stored row_version no longer matches the caller's expected version.
	ErrRowVersionConflict = errors.New("row_version_conflict")
)

// AppError carries the HTTP mapping of a service failure up to the controller.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
