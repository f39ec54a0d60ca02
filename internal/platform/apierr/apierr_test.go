package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
)

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("q: %w", perrors.ErrUnknownQuestion), http.StatusNotFound, "unknown_question"},
		{fmt.Errorf("v: %w", perrors.ErrInvalidOption), http.StatusBadRequest, "invalid_option"},
		{perrors.ErrInsufficientResponses, http.StatusUnprocessableEntity, "insufficient_responses"},
		{perrors.ErrSessionSealed, http.StatusConflict, "session_completed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		got := From(tc.err)
		assert.Equal(t, tc.status, got.Status, tc.err.Error())
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
		assert.True(t, errors.Is(got, tc.err))
	}

	custom := New(http.StatusTeapot, "teapot", nil)
	assert.Same(t, custom, From(fmt.Errorf("wrapped: %w", custom)))
}
