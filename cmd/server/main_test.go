package main

import (
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppRecoversFromPanics(t *testing.T) {
	app := newApp(&config.Config{CORSOrigins: "*"})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("handler exploded")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("fine")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// The app keeps serving after a panic.
	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestRequireSecrets(t *testing.T) {
	assert.Error(t, requireSecrets(&config.Config{}))
	assert.Error(t, requireSecrets(&config.Config{JWTSecret: "s"}))
	assert.NoError(t, requireSecrets(&config.Config{JWTSecret: "s", DBPassword: "p"}))
}
