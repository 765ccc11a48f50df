package handlers

import (
	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	pages *services.PageService
}

func NewPageHandler(pages *services.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var request struct {
		FunnelID string `json:"funnel_id" validate:"required"`
		Name     string `json:"name" validate:"required"`
		Slug     string `json:"slug"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	page, err := h.pages.Create(c.Context(), request.FunnelID, userID, request.Name, request.Slug)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(page)
}

func (h *PageHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := h.pages.Get(c.Context(), c.Params("id"), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(page)
}

// Update applies a partial update; element payloads are stored verbatim.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var request struct {
		Name        *string                   `json:"name"`
		Elements    *[]map[string]interface{} `json:"elements"`
		Styles      *map[string]interface{}   `json:"styles"`
		SEOSettings *map[string]interface{}   `json:"seo_settings"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	update := services.PageUpdate{
		Name:        request.Name,
		Elements:    request.Elements,
		Styles:      request.Styles,
		SEOSettings: request.SEOSettings,
	}
	if err := h.pages.Update(c.Context(), c.Params("id"), userID, update); err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Page updated successfully"})
}

func (h *PageHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.pages.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Page deleted successfully"})
}

// ListByFunnel returns all pages of one of the caller's funnels.
func (h *PageHandler) ListByFunnel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	pages, err := h.pages.ListByFunnel(c.Context(), c.Params("id"), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(pages)
}
