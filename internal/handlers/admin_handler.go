package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves /api/admin. Routes are also gated by AdminRequired;
// the services check the role again.
type AdminHandler struct {
	userService  *services.UserService
	statsService *services.StatsService
}

func NewAdminHandler(userService *services.UserService, statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{userService: userService, statsService: statsService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	users, err := h.userService.AdminList(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.AdminGet(c.UserContext(), p, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AdminUpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.AdminUpdate(c.UserContext(), p, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.AdminDelete(c.UserContext(), p, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if _, err := h.userService.ResetPassword(c.UserContext(), p, userID, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password reset successfully"})
}

func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	stats, err := h.statsService.Statistics(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
