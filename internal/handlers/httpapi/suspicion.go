package httpapi

import (
	"github.com/gofiber/fiber/v2"

	suspicionService "github.com/promnight/promnight/internal/services/suspicion"
)

type accuseRequest struct {
	AccuserID string `json:"accuserId"`
	AccusedID string `json:"accusedId"`
}

func (h *Handler) accuse(c *fiber.Ctx) error {
	var req accuseRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, suspicionService.ErrNotAuthenticated)
	}

	result, err := h.suspicionService.Accuse(c.Context(), &suspicionService.AccuseInput{
		AccuserID: req.AccuserID,
		AccusedID: req.AccusedID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"score": result.Score})
}
