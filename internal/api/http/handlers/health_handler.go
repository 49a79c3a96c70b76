package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
)

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
	mongo *persistence.Mongo
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, mongo *persistence.Mongo) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, mongo: mongo}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.OK(fiber.Map{"status": "ok"}))
}

// Ready GET /health/ready. Reports each backing store; only postgres is
// required for readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.Context()
	checks := fiber.Map{
		"postgres": "ok",
		"redis":    "ok",
		"mongodb":  "ok",
	}
	ready := true

	if err := h.pg.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		ready = false
	}
	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
	}
	if err := h.mongo.Ping(ctx); err != nil {
		checks["mongodb"] = err.Error()
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Envelope{
			Success: false,
			Data:    checks,
			Message: "service not ready",
		})
	}
	return c.JSON(dto.OK(checks))
}
