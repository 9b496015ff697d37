package middleware

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/principal"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets the request through only when the token's role claim is
// admin. It must run after JWTProtected. The claim is trusted as issued, so a
// role change takes effect at the user's next login.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal.FromContext(c)
		if err != nil {
			return unauthorized(c, "Unauthorized")
		}
		if err := authz.RequireAdmin(p); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Kind: string(apperr.KindForbidden), Message: err.Error(),
			})
		}
		return c.Next()
	}
}
