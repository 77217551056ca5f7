package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

func bodyLimitRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	drain := func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "unreadable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
	router.POST("/api/v1/suppliers/upload-image", drain)
	router.POST("/api/v1/auth/login", drain)
	router.GET("/api/v1/products", drain)
	return router
}

func TestBodyLimit(t *testing.T) {
	router := bodyLimitRouter(BodyLimit(64, RouteLimit{Path: "/api/v1/suppliers/upload-image", MaxBytes: 1024}))

	tests := []struct {
		name     string
		method   string
		path     string
		size     int
		chunked  bool
		wantCode int
	}{
		{"small json body", http.MethodPost, "/api/v1/auth/login", 32, false, http.StatusOK},
		{"declared length over the limit", http.MethodPost, "/api/v1/auth/login", 200, false, http.StatusRequestEntityTooLarge},
		{"chunked body is capped while reading", http.MethodPost, "/api/v1/auth/login", 200, true, http.StatusBadRequest},
		{"upload route has its own limit", http.MethodPost, "/api/v1/suppliers/upload-image", 800, false, http.StatusOK},
		{"upload route over its limit", http.MethodPost, "/api/v1/suppliers/upload-image", 2048, false, http.StatusRequestEntityTooLarge},
		{"bodyless get", http.MethodGet, "/api/v1/products", 0, false, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(strings.Repeat("x", tt.size)))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusRequestEntityTooLarge {
				assert.Contains(t, rec.Body.String(), dto.ErrCodeRequestTooLarge)
			}
		})
	}

	t.Run("zero limit disables the check", func(t *testing.T) {
		router := bodyLimitRouter(BodyLimit(0))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(strings.Repeat("x", 4096)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
