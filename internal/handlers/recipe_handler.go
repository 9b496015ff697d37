package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	recipeService *services.RecipeService
}

func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateRecipeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	recipe, err := h.recipeService.Create(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (h *RecipeHandler) List(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	recipes, err := h.recipeService.List(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipes)
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	recipe, err := h.recipeService.Get(c.UserContext(), p, recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateRecipeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	recipe, err := h.recipeService.Update(c.UserContext(), p, recipeID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.recipeService.Delete(c.UserContext(), p, recipeID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe deleted successfully"})
}

func (h *RecipeHandler) AddIngredient(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AddRecipeIngredientRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	row, err := h.recipeService.AddIngredient(c.UserContext(), p, recipeID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

func (h *RecipeHandler) UpdateIngredient(c *fiber.Ctx) error {
	p, rowID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateRecipeIngredientRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	row, err := h.recipeService.UpdateIngredient(c.UserContext(), p, rowID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(row)
}

func (h *RecipeHandler) RemoveIngredient(c *fiber.Ctx) error {
	p, rowID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.recipeService.RemoveIngredient(c.UserContext(), p, rowID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Ingredient removed from recipe"})
}

func (h *RecipeHandler) Calories(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.recipeService.Calories(c.UserContext(), p, recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Activity(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	logs, err := h.recipeService.Activity(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(logs)
}
