package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models/dto"
)

// HealthController reports service liveness and database reachability
type HealthController struct {
	db *pgxpool.Pool
}

// NewHealthController creates a new HealthController
func NewHealthController(db *pgxpool.Pool) *HealthController {
	return &HealthController{
		db: db,
	}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// Check reports service health
// @Summary Health check
// @Description Reports whether the service and its database are reachable
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=controllers.HealthStatus} "Service is healthy"
// @Failure 503 {object} dto.APIResponse{data=controllers.HealthStatus} "Database unreachable"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := HealthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := c.db.Ping(pingCtx); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}
