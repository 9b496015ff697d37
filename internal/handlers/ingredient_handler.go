package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IngredientHandler struct {
	ingredientService *services.IngredientService
}

func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateIngredientRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	ingredient, err := h.ingredientService.Create(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}

func (h *IngredientHandler) List(c *fiber.Ctx) error {
	ingredients, err := h.ingredientService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ingredients)
}

func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	ingredientID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	ingredient, err := h.ingredientService.Get(c.UserContext(), ingredientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	p, ingredientID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateIngredientRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	ingredient, err := h.ingredientService.Update(c.UserContext(), p, ingredientID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ingredient)
}

func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	p, ingredientID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.ingredientService.Delete(c.UserContext(), p, ingredientID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Ingredient deleted successfully"})
}
