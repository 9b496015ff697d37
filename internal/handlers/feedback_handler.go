package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) Add(c *fiber.Ctx) error {
	p, recipeID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.CreateFeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	fb, err := h.feedbackService.Add(c.UserContext(), p, recipeID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	views, err := h.feedbackService.ListForRecipe(c.UserContext(), recipeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *FeedbackHandler) Update(c *fiber.Ctx) error {
	p, feedbackID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateFeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	fb, err := h.feedbackService.Update(c.UserContext(), p, feedbackID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fb)
}

func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	p, feedbackID, err := caller(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.feedbackService.Delete(c.UserContext(), p, feedbackID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Feedback deleted successfully"})
}
