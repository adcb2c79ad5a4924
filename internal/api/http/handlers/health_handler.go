package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bitwharf/helpdesk/internal/persistence"
)

const readinessTimeout = 2 * time.Second

// HealthHandler answers liveness and readiness probes. Readiness checks
// the ticket store and the user cache; liveness never touches either.
type HealthHandler struct {
	service  string
	version  string
	postgres *persistence.Postgres
	redis    *persistence.Redis
	started  time.Time
}

// NewHealthHandler builds the handler.
func NewHealthHandler(service, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		service:  service,
		version:  version,
		postgres: postgres,
		redis:    redis,
		started:  time.Now(),
	}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.service,
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	checks := fiber.Map{}
	healthy := true

	if err := h.postgres.Ping(ctx); err != nil {
		checks["ticket_store"] = err.Error()
		healthy = false
	} else {
		checks["ticket_store"] = "up"
	}

	if err := h.redis.Ping(ctx); err != nil {
		checks["user_cache"] = err.Error()
		healthy = false
	} else {
		checks["user_cache"] = "up"
	}

	state, status := "ready", fiber.StatusOK
	if !healthy {
		state, status = "degraded", fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
	})
}
