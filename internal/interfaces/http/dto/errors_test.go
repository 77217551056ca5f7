package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"NOT_FOUND", http.StatusInternalServerError},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := map[string]string{
		"NOT_FOUND":           ErrCodeNotFound,
		"ALREADY_EXISTS":      ErrCodeAlreadyExists,
		"INVALID_EMAIL":       ErrCodeInvalidInput,
		"PASSWORD_HASH_ERROR": ErrCodeInternal,
		"INSUFFICIENT_STOCK":  ErrCodeInsufficientStock,
		"RATE_LIMITED":        ErrCodeRateLimited,
		ErrCodeNotFound:       ErrCodeNotFound,
		"CUSTOM_ERROR":        "CUSTOM_ERROR",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeErrorCode(input), input)
	}
}

func TestDomainCodesHaveOneOwner(t *testing.T) {
	seen := make(map[string]string)
	for api, c := range apiCodes {
		for _, d := range c.domain {
			prev, dup := seen[d]
			assert.False(t, dup, "%s is mapped by %s and %s", d, prev, api)
			seen[d] = api
		}
	}
	assert.Len(t, domainToAPI, len(seen))
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Product not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeForbidden, "Unauthorized access", "req-123")

	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"request_id":"req-123"`)
	assert.NotContains(t, string(body), `"data"`)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "rating", Message: "Must be at most 5"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Equal(t, details, resp.Error.Details)
}
