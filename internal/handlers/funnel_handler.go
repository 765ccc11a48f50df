package handlers

import (
	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FunnelHandler struct {
	funnels *services.FunnelService
}

func NewFunnelHandler(funnels *services.FunnelService) *FunnelHandler {
	return &FunnelHandler{funnels: funnels}
}

func (h *FunnelHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var request struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	funnel, err := h.funnels.Create(c.Context(), userID, request.Name, request.Description)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(funnel)
}

func (h *FunnelHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	funnels, err := h.funnels.List(c.Context(), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(funnels)
}

func (h *FunnelHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	funnel, err := h.funnels.Get(c.Context(), c.Params("id"), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(funnel)
}

// Update applies a partial update: absent fields are left untouched.
func (h *FunnelHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var request struct {
		Name        *string                 `json:"name"`
		Description *string                 `json:"description"`
		Settings    *map[string]interface{} `json:"settings"`
		Published   *bool                   `json:"published"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	update := services.FunnelUpdate{
		Name:        request.Name,
		Description: request.Description,
		Settings:    request.Settings,
		Published:   request.Published,
	}
	if err := h.funnels.Update(c.Context(), c.Params("id"), userID, update); err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Funnel updated successfully"})
}

func (h *FunnelHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.funnels.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Funnel deleted successfully"})
}
