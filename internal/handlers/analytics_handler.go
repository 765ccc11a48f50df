package handlers

import (
	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Track records an event. No auth: events are fired from public funnel
// pages, not the builder.
func (h *AnalyticsHandler) Track(c *fiber.Ctx) error {
	var request struct {
		FunnelID  string                 `json:"funnel_id" validate:"required"`
		PageID    string                 `json:"page_id"`
		EventType string                 `json:"event_type" validate:"required"`
		Metadata  map[string]interface{} `json:"metadata"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := h.analytics.Track(c.Context(), request.FunnelID, request.PageID, request.EventType, request.Metadata)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Event tracked successfully"})
}

// Summary returns aggregate metrics for one of the caller's funnels.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	summary, err := h.analytics.Summarize(c.Context(), c.Params("id"), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}
