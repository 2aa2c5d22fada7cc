package httpapi

import (
	"github.com/gofiber/fiber/v2"

	jukeboxService "github.com/promnight/promnight/internal/services/jukebox"
)

func (h *Handler) jukeboxSongs(c *fiber.Ctx) error {
	result, err := h.jukeboxService.Catalog(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"songs": result.Songs})
}

func (h *Handler) jukeboxQueue(c *fiber.Ctx) error {
	playing, err := h.jukeboxService.EnsureNowPlaying(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	upNext, err := h.jukeboxService.UpNext(c.Context(), &jukeboxService.UpNextInput{})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"nowPlaying": playing.Entry,
		"upNext":     upNext.Entries,
	})
}

type enqueueRequest struct {
	Filename    string `json:"filename"`
	RequesterID string `json:"requesterId"`
}

func (h *Handler) jukeboxEnqueue(c *fiber.Ctx) error {
	var req enqueueRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, jukeboxService.ErrSongNotFound)
	}

	result, err := h.jukeboxService.Enqueue(c.Context(), &jukeboxService.EnqueueInput{
		Filename:    req.Filename,
		RequesterID: req.RequesterID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"entry": result.Entry})
}

type playbackSignalRequest struct {
	EntryID string `json:"entryId"`
}

func (h *Handler) jukeboxFinish(c *fiber.Ctx) error {
	var req playbackSignalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, jukeboxService.ErrSongNotFound)
	}

	if err := h.jukeboxService.Finish(c.Context(), &jukeboxService.FinishInput{
		EntryID: req.EntryID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) jukeboxSkip(c *fiber.Ctx) error {
	var req playbackSignalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, jukeboxService.ErrSongNotFound)
	}

	if err := h.jukeboxService.Skip(c.Context(), &jukeboxService.SkipInput{
		EntryID: req.EntryID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
