package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// kindByStatus names the client errors Fiber raises itself (unknown routes,
// oversized bodies, limiter rejections).
var kindByStatus = map[int]apperr.Kind{
	fiber.StatusBadRequest:   apperr.KindValidation,
	fiber.StatusUnauthorized: apperr.KindUnauthorized,
	fiber.StatusForbidden:    apperr.KindForbidden,
	fiber.StatusNotFound:     apperr.KindNotFound,
	fiber.StatusConflict:     apperr.KindConflict,
}

// ErrorHandler is the app-wide fallback for errors no handler turned into a
// response, including recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return respondError(c, apperr.Storage("unhandled error", err))
	}
	if fe.Code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(),
			"request_id", c.Locals("requestid"), "error", err.Error())
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
	return c.Status(fe.Code).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    string(kindByStatus[fe.Code]),
		Message: fe.Message,
	})
}
