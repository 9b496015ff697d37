package principal

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/authz"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claim names embedded in the bearer token.
const (
	ClaimSubject = "sub"
	ClaimRole    = "role"
)

// FromContext extracts the principal from the verified JWT in Fiber locals.
// The role claim is trusted as issued; it is not re-read from storage.
func FromContext(c *fiber.Ctx) (authz.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return authz.Principal{}, errors.New("invalid token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, errors.New("invalid claims")
	}
	return FromClaims(claims)
}

func FromClaims(claims jwt.MapClaims) (authz.Principal, error) {
	sub, ok := claims[ClaimSubject].(string)
	if !ok {
		return authz.Principal{}, errors.New("missing sub claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return authz.Principal{}, errors.New("invalid sub claim")
	}

	role, _ := claims[ClaimRole].(string)
	r := authz.Role(role)
	if !r.Valid() {
		return authz.Principal{}, errors.New("invalid role claim")
	}
	return authz.Principal{UserID: uint(id), Role: r}, nil
}
