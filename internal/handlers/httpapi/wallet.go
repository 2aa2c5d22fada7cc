package httpapi

import (
	"github.com/gofiber/fiber/v2"

	walletService "github.com/promnight/promnight/internal/services/wallet"
)

func (h *Handler) walletOverview(c *fiber.Ctx) error {
	result, err := h.walletService.Overview(c.Context(), &walletService.OverviewInput{
		CharacterID: c.Params("id"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"balance":       result.Balance,
		"notifications": result.Notifications,
		"requests":      result.Requests,
	})
}

type walletSendRequest struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount int    `json:"amount"`
}

func (h *Handler) walletSend(c *fiber.Ctx) error {
	var req walletSendRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, walletService.ErrInvalidAmount)
	}

	result, err := h.walletService.QueueSend(c.Context(), &walletService.QueueSendInput{
		FromID: req.FromID,
		ToID:   req.ToID,
		Amount: req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"request": result.Request})
}

type walletRequestRequest struct {
	RequesterID string `json:"requesterId"`
	TargetID    string `json:"targetId"`
	Amount      int    `json:"amount"`
}

func (h *Handler) walletRequest(c *fiber.Ctx) error {
	var req walletRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, walletService.ErrInvalidAmount)
	}

	result, err := h.walletService.RequestFrom(c.Context(), &walletService.RequestFromInput{
		RequesterID: req.RequesterID,
		TargetID:    req.TargetID,
		Amount:      req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"request": result.Request})
}

type walletRespondRequest struct {
	RequestID string `json:"requestId"`
	TargetID  string `json:"targetId"`
	Decision  string `json:"decision"`
}

func (h *Handler) walletRespond(c *fiber.Ctx) error {
	var req walletRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, walletService.ErrRequestNotFound)
	}

	if err := h.walletService.Respond(c.Context(), &walletService.RespondInput{
		RequestID: req.RequestID,
		TargetID:  req.TargetID,
		Decision:  walletService.Decision(req.Decision),
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

type walletDismissRequest struct {
	CharacterID string `json:"characterId"`
}

func (h *Handler) walletDismiss(c *fiber.Ctx) error {
	var req walletDismissRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, walletService.ErrNotificationNotFound)
	}

	if err := h.walletService.DismissNotification(c.Context(), &walletService.DismissNotificationInput{
		NotificationID: c.Params("id"),
		CharacterID:    req.CharacterID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
