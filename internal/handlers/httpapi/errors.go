package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	boardService "github.com/promnight/promnight/internal/services/board"
	jukeboxService "github.com/promnight/promnight/internal/services/jukebox"
	photoboothService "github.com/promnight/promnight/internal/services/photobooth"
	sessionService "github.com/promnight/promnight/internal/services/session"
	suspicionService "github.com/promnight/promnight/internal/services/suspicion"
	walletService "github.com/promnight/promnight/internal/services/wallet"
)

// statusFor maps service errors to HTTP status codes. Unknown errors
// surface as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sessionService.ErrInvalidLoginCode),
		errors.Is(err, suspicionService.ErrNotAuthenticated):
		return fiber.StatusUnauthorized

	case errors.Is(err, sessionService.ErrCharacterNotFound),
		errors.Is(err, boardService.ErrCharacterNotFound),
		errors.Is(err, walletService.ErrCharacterNotFound),
		errors.Is(err, suspicionService.ErrCharacterNotFound),
		errors.Is(err, photoboothService.ErrCharacterNotFound),
		errors.Is(err, walletService.ErrRequestNotFound),
		errors.Is(err, walletService.ErrNotificationNotFound),
		errors.Is(err, jukeboxService.ErrSongNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, walletService.ErrNotRequestTarget),
		errors.Is(err, walletService.ErrNotNotificationRecipient):
		return fiber.StatusForbidden

	case errors.Is(err, jukeboxService.ErrDuplicateEntry),
		errors.Is(err, walletService.ErrRequestNotPending),
		errors.Is(err, suspicionService.ErrPhaseLocked),
		errors.Is(err, suspicionService.ErrAccusedNotAlive):
		return fiber.StatusConflict

	case errors.Is(err, suspicionService.ErrCooldownActive):
		return fiber.StatusTooManyRequests

	case errors.Is(err, walletService.ErrInsufficientBalance):
		return fiber.StatusPaymentRequired

	case errors.Is(err, walletService.ErrInvalidAmount),
		errors.Is(err, walletService.ErrSelfTransfer),
		errors.Is(err, boardService.ErrEmptyBody),
		errors.Is(err, boardService.ErrSelfDM),
		errors.Is(err, suspicionService.ErrSelfAccusation),
		errors.Is(err, jukeboxService.ErrThemeReserved),
		errors.Is(err, photoboothService.ErrWrongImageCount),
		errors.Is(err, photoboothService.ErrInvalidImage):
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}

// respondError writes the error as a small JSON body
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
