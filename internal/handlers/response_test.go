package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })
	return app
}

func decode(t *testing.T, app *fiber.App, path string) (int, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondErrorStatusByKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{apperr.Validation("Invalid date format. Use YYYY-MM-DD."), fiber.StatusBadRequest, "validation"},
		{apperr.NotFound("Recipe not found"), fiber.StatusNotFound, "not_found"},
		{authz.ErrForbidden, fiber.StatusForbidden, "forbidden"},
		{authz.ErrSelfDeletion, fiber.StatusForbidden, "forbidden"},
		{apperr.Conflict("Cannot delete: ingredient is in use by a recipe"), fiber.StatusConflict, "conflict"},
	}
	for _, tt := range tests {
		status, body := decode(t, errorApp(tt.err), "/")
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.True(t, body.Error)
		assert.Equal(t, tt.kind, body.Kind)
		assert.Equal(t, tt.err.Error(), body.Message)
	}
}

func TestRespondErrorMasksStorageFailures(t *testing.T) {
	status, body := decode(t, errorApp(apperr.Storage("storage error", errors.New("password authentication failed"))), "/")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "storage", body.Kind)

	status, body = decode(t, errorApp(errors.New("unclassified")), "/")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestCallerRequiresToken(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		if _, _, err := caller(c, "id"); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	status, body := decode(t, app, "/items/3")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", body.Kind)
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"error": false, "message": id})
	})

	for _, bad := range []string{"abc", "0", "-4"} {
		status, body := decode(t, app, "/items/"+bad)
		assert.Equal(t, fiber.StatusBadRequest, status, bad)
		assert.Equal(t, "Invalid id", body.Message)
	}
}

func TestErrorHandlerFallbacks(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("driver exploded") })

	status, body := decode(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", body.Kind)

	status, body = decode(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "storage", body.Kind)
	assert.Equal(t, "Internal server error", body.Message)
}
