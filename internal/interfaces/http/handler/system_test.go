package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

func newSystemRouter(db Pinger) *gin.Engine {
	h := NewSystemHandler("SwiftSupply API", "1.2.3", db)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/system/ping", h.Ping)
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		rec := performRequest(newSystemRouter(pingerFunc(func() error { return nil })), http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "ok", resp.Database)
		_, err := time.Parse(time.RFC3339, resp.Time)
		assert.NoError(t, err)
	})

	t.Run("database down", func(t *testing.T) {
		rec := performRequest(newSystemRouter(pingerFunc(func() error { return errors.New("dial tcp: refused") })), http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "error", resp.Database)
	})

	t.Run("no database", func(t *testing.T) {
		rec := performRequest(newSystemRouter(nil), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	rec := performRequest(newSystemRouter(nil), http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info SystemInfoResponse
	decodeData(t, rec, &info)
	assert.Equal(t, "SwiftSupply API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}

func TestSystemHandler_Ping(t *testing.T) {
	rec := performRequest(newSystemRouter(nil), http.MethodGet, "/system/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pong PingResponse
	decodeData(t, rec, &pong)
	assert.Equal(t, "pong", pong.Message)
	_, err := time.Parse(time.RFC3339, pong.Timestamp)
	assert.NoError(t, err)
}
