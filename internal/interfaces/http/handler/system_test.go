package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls int
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	p.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

func serveSystem(h *SystemHandler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(nil, "1.4.0")
	assert.False(t, h.startTime.IsZero())

	w := serveSystem(h, "/system/info")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    SystemInfoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Jewelry Sales API", resp.Data.Name)
	assert.Equal(t, "1.4.0", resp.Data.Version)
	assert.NotEmpty(t, resp.Data.GoVersion)
	assert.NotEmpty(t, resp.Data.Uptime)
}

func TestSystemHandler_Health(t *testing.T) {
	pinger := &fakePinger{err: errors.New("down")}
	w := serveSystem(NewSystemHandler(pinger, "dev"), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, pinger.calls, "liveness must not touch the database")

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestSystemHandler_Ready(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		pinger := &fakePinger{}
		w := serveSystem(NewSystemHandler(pinger, "dev"), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, pinger.calls)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Database)
	})

	t.Run("database unreachable", func(t *testing.T) {
		w := serveSystem(NewSystemHandler(&fakePinger{err: errors.New("connection refused")}, "dev"), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodePersistenceFailure, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
