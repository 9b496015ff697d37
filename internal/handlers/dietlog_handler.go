package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DietLogHandler struct {
	dietLogService *services.DietLogService
}

func NewDietLogHandler(dietLogService *services.DietLogService) *DietLogHandler {
	return &DietLogHandler{dietLogService: dietLogService}
}

func (h *DietLogHandler) Create(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateDietLogRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.dietLogService.Create(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// List accepts an optional date=YYYY-MM-DD filter.
func (h *DietLogHandler) List(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	logs, err := h.dietLogService.List(c.UserContext(), p, c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(logs)
}

func (h *DietLogHandler) Get(c *fiber.Ctx) error {
	p, logID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	entry, err := h.dietLogService.Get(c.UserContext(), p, logID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *DietLogHandler) Update(c *fiber.Ctx) error {
	p, logID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateDietLogRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.dietLogService.Update(c.UserContext(), p, logID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

func (h *DietLogHandler) Delete(c *fiber.Ctx) error {
	p, logID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.dietLogService.Delete(c.UserContext(), p, logID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Diet log deleted successfully"})
}

func (h *DietLogHandler) Toggle(c *fiber.Ctx) error {
	p, logID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	entry, err := h.dietLogService.Toggle(c.UserContext(), p, logID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Summary reads days from the query string, default 7.
func (h *DietLogHandler) Summary(c *fiber.Ctx) error {
	p, _, err := caller(c, "")
	if err != nil {
		return respondError(c, err)
	}

	days := services.DefaultSummaryDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, apperr.Validation("days must be an integer"))
		}
		days = n
	}

	summary, err := h.dietLogService.Summary(c.UserContext(), p, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
