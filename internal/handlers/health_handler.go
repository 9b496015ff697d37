package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const pingTimeout = 2 * time.Second

// HealthHandler reports liveness and database reachability. An unreachable
// database turns the check into a 503 so load balancers drain the node.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{ping: func(ctx context.Context) error {
		return database.Ping(ctx, pingTimeout)
	}}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", DB: "ok"}
	status := fiber.StatusOK

	started := time.Now()
	if err := h.ping(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
		status = fiber.StatusServiceUnavailable
	}
	resp.DBLatencyMs = time.Since(started).Milliseconds()
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)

	return c.Status(status).JSON(resp)
}
