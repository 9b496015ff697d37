package handlers

import (
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/principal"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// respondError writes err as an ErrorResponse. Storage failures are logged
// and their detail is never exposed.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	message := err.Error()
	if kind == apperr.KindStorage {
		attrs := []any{"method", c.Method(), "path", c.Path(), "error", err.Error()}
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
			attrs = append(attrs, "request_id", rid)
		}
		if p, perr := principal.FromContext(c); perr == nil {
			attrs = append(attrs, "user_id", strconv.FormatUint(uint64(p.UserID), 10))
		}
		slog.Error("request failed", attrs...)
		message = "Internal server error"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    string(kind),
		Message: message,
	})
}

// parseBody decodes and validates the JSON body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return dto.Validate(req)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return uint(id), nil
}

// caller resolves the principal and the numeric path parameter name. An
// empty name skips the parameter.
func caller(c *fiber.Ctx, name string) (authz.Principal, uint, error) {
	p, err := principal.FromContext(c)
	if err != nil {
		return authz.Principal{}, 0, apperr.Unauthorized("Unauthorized")
	}
	if name == "" {
		return p, 0, nil
	}
	id, err := paramID(c, name)
	if err != nil {
		return authz.Principal{}, 0, err
	}
	return p, id, nil
}
