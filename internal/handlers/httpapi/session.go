package httpapi

import (
	"github.com/gofiber/fiber/v2"

	sessionService "github.com/promnight/promnight/internal/services/session"
)

type loginRequest struct {
	Code string `json:"code"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, sessionService.ErrInvalidLoginCode)
	}

	result, err := h.sessionService.Login(c.Context(), &sessionService.LoginInput{
		LoginCode: req.Code,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"character": toCharacterView(result.Character)})
}

func (h *Handler) state(c *fiber.Ctx) error {
	result, err := h.sessionService.State(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(&StateView{
		Characters: toCharacterViews(result.Characters),
		PhaseTwo:   result.PhaseTwo,
		Board:      result.Board,
		NowPlaying: result.NowPlaying,
		UpNext:     result.UpNext,
	})
}

func (h *Handler) getCharacter(c *fiber.Ctx) error {
	result, err := h.sessionService.GetCharacter(c.Context(), &sessionService.GetCharacterInput{
		CharacterID: c.Params("id"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"character": toCharacterView(result.Character)})
}
