package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/logger"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// asUser simulates the JWT middleware for the given user and role
func asUser(userID uuid.UUID, role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, string(role))
		c.Next()
	}
}

// mockResult unpacks a (value, error) pair recorded on a testify mock
func mockResult[T any](args mock.Arguments) (T, error) {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func performRequest(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals a success envelope, decoding data into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.True(t, envelope.Success, rec.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error.Code
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	t.Run("from the request id middleware", func(t *testing.T) {
		c, _ := newTestContext("GET", "/")
		c.Set(logger.GinRequestIDKey, "ctx-id")
		c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})
	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := newTestContext("GET", "/")
		c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})
	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext("GET", "/")
		assert.Empty(t, getRequestID(c))
	})
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       func(*BaseHandler, *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{"BadRequest", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"NotFound", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"Unauthorized", func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "who") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"ErrorWithCode", func(h *BaseHandler, c *gin.Context) { h.ErrorWithCode(c, dto.ErrCodeInsufficientStock, "short") }, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		{"ErrorWithCode too large", func(h *BaseHandler, c *gin.Context) { h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, "big") }, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("GET", "/")
			c.Set(logger.GinRequestIDKey, "req-1")

			tt.method(&BaseHandler{}, c)

			assert.Equal(t, tt.expectedCode, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"invalid input", shared.InvalidInput("Invalid or expired OTP"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"forbidden", shared.Forbidden("Seller access required"), http.StatusForbidden, dto.ErrCodeForbidden},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		{"rate limited", shared.ErrRateLimited, http.StatusTooManyRequests, dto.ErrCodeRateLimited},
		{"wrapped", fmt.Errorf("load product: %w", shared.NotFound("Product not found")), http.StatusNotFound, dto.ErrCodeNotFound},
		{"plain error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("GET", "/")

			(&BaseHandler{}).HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}

	t.Run("keeps the domain message and hides others", func(t *testing.T) {
		c, w := newTestContext("GET", "/")
		(&BaseHandler{}).HandleError(c, shared.InvalidInput("Invalid or expired OTP"))
		assert.Contains(t, w.Body.String(), "Invalid or expired OTP")

		c, w = newTestContext("GET", "/")
		(&BaseHandler{}).HandleError(c, fmt.Errorf("pq: connection refused"))
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		c, w := newTestContext("GET", "/")
		(&BaseHandler{}).HandleError(c, nil)
		assert.Zero(t, w.Body.Len())
	})
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 12},
		{"?page=3&limit=5", 3, 5},
		{"?page=0&limit=0", 1, 12},
		{"?page=-2&limit=abc", 1, 12},
		{"?limit=500", 1, MaxPageSize},
		{"?per_page=7", 1, 7},
		{"?page=2&limit=9&per_page=7", 2, 9},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := newTestContext("GET", "/"+tt.query)
			page, limit := pageParams(c, 12, "limit", "per_page")
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestOptionalUUIDQuery(t *testing.T) {
	id := uuid.New()

	c, _ := newTestContext("GET", "/?productId="+id.String())
	got, ok := optionalUUIDQuery(c, "productId")
	require.True(t, ok)
	assert.Equal(t, id, *got)

	c, _ = newTestContext("GET", "/")
	got, ok = optionalUUIDQuery(c, "productId")
	assert.True(t, ok)
	assert.Nil(t, got)

	c, _ = newTestContext("GET", "/?productId=nope")
	_, ok = optionalUUIDQuery(c, "productId")
	assert.False(t, ok)
}
