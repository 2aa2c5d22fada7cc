package httpapi

import (
	"github.com/gofiber/fiber/v2"

	photoboothService "github.com/promnight/promnight/internal/services/photobooth"
)

func (h *Handler) listPhotoStrips(c *fiber.Ctx) error {
	result, err := h.photoboothService.ListStrips(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"strips": result.Strips})
}

type savePhotoStripRequest struct {
	CharacterID string   `json:"characterId"`
	Images      []string `json:"images"`
}

func (h *Handler) savePhotoStrip(c *fiber.Ctx) error {
	var req savePhotoStripRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, photoboothService.ErrWrongImageCount)
	}

	result, err := h.photoboothService.SaveStrip(c.Context(), &photoboothService.SaveStripInput{
		CharacterID: req.CharacterID,
		Images:      req.Images,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"strip": result.Strip})
}
