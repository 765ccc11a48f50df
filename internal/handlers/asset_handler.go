package handlers

import (
	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/flowfunnels/flowfunnels-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AssetHandler struct {
	assets *services.AssetService
}

func NewAssetHandler(assets *services.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// Upload stores a media file for use in page elements.
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to retrieve file"})
	}

	asset, err := h.assets.Upload(c.Context(), userID, fileHeader)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Asset uploaded successfully",
		"asset":   asset,
	})
}

func (h *AssetHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	assets, err := h.assets.List(c.Context(), userID)
	if err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(assets)
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.assets.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return c.Status(apperr.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Asset deleted successfully"})
}
