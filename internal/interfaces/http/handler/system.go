package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves health probes and build information
type SystemHandler struct {
	BaseHandler
	db        Pinger
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil.
func NewSystemHandler(db Pinger, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version, startTime: time.Now()}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Jewelry Sales API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse reports liveness and readiness
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Jewelry Sales API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Health godoc
// @ID           health
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready godoc
// @ID           ready
// @Summary      Readiness probe
// @Description  Fails with 503 while the database is unreachable
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} ErrorResponse
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodePersistenceFailure, "Database unavailable")
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
