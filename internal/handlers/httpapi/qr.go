package httpapi

import (
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// joinQR renders the join URL as a PNG for the TV display
func (h *Handler) joinQR(c *fiber.Ctx) error {
	if h.joinBaseURL == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "join URL not configured"})
	}

	png, err := qrcode.Encode(h.joinBaseURL, qrcode.Medium, 512)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
