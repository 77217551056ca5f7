package dto

import "net/http"

// API error codes. Clients switch on these, so they never change once published.
const (
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput covers domain input checks that pass request binding
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// ErrCodeInvalidState rejects an order transition or a disabled feature
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

type apiCode struct {
	status int
	// domain codes of shared.DomainError reported under this API code
	domain []string
}

var apiCodes = map[string]apiCode{
	ErrCodeInternal:            {http.StatusInternalServerError, []string{"INTERNAL_ERROR", "PASSWORD_HASH_ERROR"}},
	ErrCodeValidation:          {http.StatusBadRequest, []string{"VALIDATION_ERROR"}},
	ErrCodeBadRequest:          {http.StatusBadRequest, []string{"BAD_REQUEST"}},
	ErrCodeInvalidInput:        {http.StatusBadRequest, []string{"INVALID_INPUT", "INVALID_EMAIL", "INVALID_PASSWORD"}},
	ErrCodeInvalidJSON:         {http.StatusBadRequest, nil},
	ErrCodeRequestTooLarge:     {http.StatusRequestEntityTooLarge, nil},
	ErrCodeUnauthorized:        {http.StatusUnauthorized, []string{"UNAUTHORIZED"}},
	ErrCodeForbidden:           {http.StatusForbidden, []string{"FORBIDDEN"}},
	ErrCodeTokenExpired:        {http.StatusUnauthorized, nil},
	ErrCodeTokenInvalid:        {http.StatusUnauthorized, nil},
	ErrCodeNotFound:            {http.StatusNotFound, []string{"NOT_FOUND"}},
	ErrCodeAlreadyExists:       {http.StatusConflict, []string{"ALREADY_EXISTS"}},
	ErrCodeConflict:            {http.StatusConflict, nil},
	ErrCodeConcurrencyConflict: {http.StatusConflict, []string{"CONCURRENCY_CONFLICT"}},
	ErrCodeInvalidState:        {http.StatusUnprocessableEntity, []string{"INVALID_STATE"}},
	ErrCodeInsufficientStock:   {http.StatusUnprocessableEntity, []string{"INSUFFICIENT_STOCK"}},
	ErrCodeRateLimited:         {http.StatusTooManyRequests, []string{"RATE_LIMITED"}},
}

var domainToAPI = func() map[string]string {
	out := make(map[string]string)
	for code, c := range apiCodes {
		for _, d := range c.domain {
			out[d] = code
		}
	}
	return out
}()

// GetHTTPStatus returns the status for an API error code, 500 for unknown codes
func GetHTTPStatus(code string) int {
	if c, ok := apiCodes[code]; ok {
		return c.status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode turns a domain error code into its API code.
// API codes and unknown codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if api, ok := domainToAPI[code]; ok {
		return api
	}
	return code
}
