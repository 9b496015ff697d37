package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Get(c.UserContext(), p, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Update(c.UserContext(), p, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Delete is self-service: the account and everything it owns is removed.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.DeleteSelf(c.UserContext(), p, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) UpdateWeight(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateWeightRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.userService.UpdateWeight(c.UserContext(), p, userID, *req.Weight)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *UserHandler) WeightHistory(c *fiber.Ctx) error {
	p, userID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	history, err := h.userService.WeightHistory(c.UserContext(), p, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}
