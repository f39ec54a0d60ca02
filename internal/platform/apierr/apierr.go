package apierr

import (
	"errors"
	"fmt"
	"net/http"

	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var mappings = []struct {
	target error
	status int
	code   string
}{
	{perrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{perrors.ErrUnknownQuestion, http.StatusNotFound, "unknown_question"},
	{perrors.ErrInvalidOption, http.StatusBadRequest, "invalid_option"},
	{perrors.ErrUnknownDifficulty, http.StatusBadRequest, "unknown_difficulty"},
	{perrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{perrors.ErrInsufficientResponses, http.StatusUnprocessableEntity, "insufficient_responses"},
	{perrors.ErrSessionSealed, http.StatusConflict, "session_completed"},
	{perrors.ErrSessionNotCompleted, http.StatusConflict, "session_not_completed"},
	{perrors.ErrUnknownTrack, http.StatusInternalServerError, "unknown_track"},
}

// From converts err into an *Error. Existing *Error values pass through;
// profiling sentinels get their status and code; anything else is a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return New(m.status, m.code, err)
		}
	}
	return New(http.StatusInternalServerError, "internal", err)
}
