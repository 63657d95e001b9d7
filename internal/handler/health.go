package handler

import (
	"context"
	"time"

	"slidequiz/internal/domain"
	"slidequiz/internal/dto"
	"slidequiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports the status of the backing stores
type HealthHandler struct {
	cache domain.Cache
	db    Pinger
}

// NewHealthHandler creates a HealthHandler. db may be nil when result
// history is disabled.
func NewHealthHandler(cache domain.Cache, db Pinger) *HealthHandler {
	return &HealthHandler{cache: cache, db: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Cache: "ok"}
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Cache health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Cache = "unavailable"
	}
	if h.db != nil {
		resp.DB = "ok"
		if err := h.db.PingContext(ctx); err != nil {
			logger.Get().Warn("Database health check failed", zap.Error(err))
			resp.Status = "degraded"
			resp.DB = "unavailable"
		}
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
