package handlers

import (
	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TemplateHandler struct {
	templates *services.TemplateService
}

func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns the template library. No auth: templates are public.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.templates.List(c.Context())
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(templates)
}

// Clone copies a template into a new funnel owned by the caller.
func (h *TemplateHandler) Clone(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	funnel, err := h.templates.Clone(c.Context(), c.Params("id"), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":      funnel.ID,
		"message": "Template cloned successfully",
	})
}
