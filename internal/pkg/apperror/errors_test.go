package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
	}{
		{"bad request", BadRequest(CodeMissingFundID), http.StatusBadRequest},
		{"unprocessable", FieldRequired("fiscalYearId"), http.StatusUnprocessableEntity},
		{"not found", NotFound(CodeTransactionNotFound), http.StatusNotFound},
		{"conflict", Conflict(CodeConflict), http.StatusConflict},
		{"internal", Internal("db down", errors.New("dial tcp")), http.StatusInternalServerError},
		{"not implemented", NotImplemented("transactionPatches"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.status, StatusOf(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestFieldRequired(t *testing.T) {
	err := FieldRequired("fromFundId")

	require.Len(t, err.Errors, 1)
	assert.Equal(t, "-1", err.Errors[0].Code)
	assert.Equal(t, "may not be null", err.Errors[0].Message)
	assert.Equal(t, []Parameter{{Key: "fromFundId", Value: "null"}}, err.Errors[0].Parameters)
	assert.True(t, HasCode(err, CodeFieldRequired))
	assert.False(t, HasCode(err, CodeInvalidValue))
}

func TestNotImplemented(t *testing.T) {
	err := NotImplemented("transactionPatches")
	assert.Equal(t, "transactionPatches: not implemented", err.Message)
	assert.Empty(t, err.Errors)
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("failed to commit", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.False(t, HasCode(errors.New("boom"), CodeGeneric))
}

func TestJoin(t *testing.T) {
	joined := Join(nil, BadRequest(CodeMissingFundID), BadRequest(CodeMissingOrderID))

	require.NotNil(t, joined)
	assert.Len(t, joined.Errors, 2)
	assert.Equal(t, "missingFundId", joined.FirstCode())
	assert.Nil(t, Join())
}
