package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MealPlanHandler struct {
	mealPlanService *services.MealPlanService
}

func NewMealPlanHandler(mealPlanService *services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

func (h *MealPlanHandler) Create(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateMealPlanRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	plan, err := h.mealPlanService.Create(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *MealPlanHandler) List(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	plans, err := h.mealPlanService.List(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

func (h *MealPlanHandler) Get(c *fiber.Ctx) error {
	p, planID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	plan, err := h.mealPlanService.Get(c.UserContext(), p, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *MealPlanHandler) Update(c *fiber.Ctx) error {
	p, planID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateMealPlanRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	plan, err := h.mealPlanService.Update(c.UserContext(), p, planID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *MealPlanHandler) Delete(c *fiber.Ctx) error {
	p, planID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.mealPlanService.Delete(c.UserContext(), p, planID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Meal plan deleted successfully"})
}

func (h *MealPlanHandler) AddRecipe(c *fiber.Ctx) error {
	p, planID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.AddMealPlanRecipeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	link, err := h.mealPlanService.AddRecipe(c.UserContext(), p, planID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

func (h *MealPlanHandler) RemoveRecipe(c *fiber.Ctx) error {
	p, linkID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.mealPlanService.RemoveRecipe(c.UserContext(), p, linkID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe removed from meal plan"})
}

func (h *MealPlanHandler) Summary(c *fiber.Ctx) error {
	p, planID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	rows, err := h.mealPlanService.Summary(c.UserContext(), p, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *MealPlanHandler) LogDay(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.LogMealPlanDayRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.mealPlanService.LogDay(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
