package jukebox

import "github.com/promnight/promnight/internal/models"

// CatalogOutput contains the player-visible songs
type CatalogOutput struct {
	Songs []*models.Song
}

// EnqueueInput contains parameters for queueing a song
type EnqueueInput struct {
	Filename    string
	RequesterID string
	Priority    int
}

// EnqueueOutput contains the created queue entry
type EnqueueOutput struct {
	Entry *models.QueueEntry
}

// EnsureNowPlayingOutput contains the playing entry, nil when idle
type EnsureNowPlayingOutput struct {
	Entry *models.QueueEntry
}

// NowPlayingOutput contains the playing entry, nil when idle
type NowPlayingOutput struct {
	Entry *models.QueueEntry
}

// UpNextInput contains parameters for listing upcoming entries
type UpNextInput struct {
	// Limit caps the number of returned entries, 0 means no cap
	Limit int
}

// UpNextOutput contains the queued entries in play order
type UpNextOutput struct {
	Entries []*models.QueueEntry
}

// FinishInput identifies the entry that finished playing
type FinishInput struct {
	EntryID string
}

// SkipInput identifies the entry being skipped
type SkipInput struct {
	EntryID string
}

// ForcePlayInput contains parameters for the forced override
type ForcePlayInput struct {
	RequesterID string
}

// ForcePlayOutput contains the now-playing theme entry
type ForcePlayOutput struct {
	Entry *models.QueueEntry
}
