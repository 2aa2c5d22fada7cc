package httpapi

import (
	"github.com/gofiber/fiber/v2"

	boardService "github.com/promnight/promnight/internal/services/board"
	sessionService "github.com/promnight/promnight/internal/services/session"
)

type gmTargetRequest struct {
	CharacterID string `json:"characterId"`
}

func (h *Handler) gmKill(c *fiber.Ctx) error {
	var req gmTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, sessionService.ErrCharacterNotFound)
	}

	result, err := h.sessionService.Kill(c.Context(), &sessionService.KillInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"changed":      result.Changed,
		"phaseStarted": result.PhaseStarted,
	})
}

func (h *Handler) gmRevive(c *fiber.Ctx) error {
	var req gmTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, sessionService.ErrCharacterNotFound)
	}

	result, err := h.sessionService.Revive(c.Context(), &sessionService.ReviveInput{
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"changed": result.Changed})
}

func (h *Handler) gmSeed(c *fiber.Ctx) error {
	if err := h.sessionService.Reseed(c.Context(), &sessionService.ReseedInput{}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

type gmAnnounceRequest struct {
	Body string `json:"body"`
}

func (h *Handler) gmAnnounce(c *fiber.Ctx) error {
	var req gmAnnounceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, boardService.ErrEmptyBody)
	}

	result, err := h.boardService.PostAnnouncement(c.Context(), &boardService.PostAnnouncementInput{
		Body: req.Body,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": result.Message})
}

func (h *Handler) gmClearBoard(c *fiber.Ctx) error {
	if err := h.boardService.ClearPublic(c.Context()); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
