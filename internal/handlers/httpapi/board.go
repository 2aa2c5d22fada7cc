package httpapi

import (
	"github.com/gofiber/fiber/v2"

	boardService "github.com/promnight/promnight/internal/services/board"
)

func (h *Handler) listBoard(c *fiber.Ctx) error {
	result, err := h.boardService.ListPublic(c.Context(), &boardService.ListPublicInput{
		Limit: c.QueryInt("limit"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"posts": result.Posts})
}

type postBoardRequest struct {
	SenderID  string `json:"senderId"`
	Body      string `json:"body"`
	Anonymous bool   `json:"anonymous"`
}

func (h *Handler) postBoard(c *fiber.Ctx) error {
	var req postBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, boardService.ErrEmptyBody)
	}

	result, err := h.boardService.PostPublic(c.Context(), &boardService.PostPublicInput{
		SenderID:  req.SenderID,
		Body:      req.Body,
		Anonymous: req.Anonymous,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": result.Message})
}

func (h *Handler) dmThreads(c *fiber.Ctx) error {
	result, err := h.boardService.ThreadsFor(c.Context(), &boardService.ThreadsForInput{
		UserID: c.Query("character"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"threads": result.Threads})
}

func (h *Handler) dmThread(c *fiber.Ctx) error {
	result, err := h.boardService.ThreadMessages(c.Context(), &boardService.ThreadMessagesInput{
		UserID:  c.Query("character"),
		OtherID: c.Params("otherId"),
		Limit:   c.QueryInt("limit"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"messages": result.Messages})
}

type postDMRequest struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

func (h *Handler) postDM(c *fiber.Ctx) error {
	var req postDMRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, boardService.ErrEmptyBody)
	}

	result, err := h.boardService.PostDM(c.Context(), &boardService.PostDMInput{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": result.Message})
}

type markReadRequest struct {
	CharacterID string `json:"characterId"`
}

func (h *Handler) markDMRead(c *fiber.Ctx) error {
	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, boardService.ErrCharacterNotFound)
	}

	if err := h.boardService.MarkRead(c.Context(), &boardService.MarkReadInput{
		UserID:  req.CharacterID,
		OtherID: c.Params("otherId"),
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
