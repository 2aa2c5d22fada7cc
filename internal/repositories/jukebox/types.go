package jukebox

import "github.com/promnight/promnight/internal/models"

// SaveEntryInput contains parameters for saving a queue entry
type SaveEntryInput struct {
	Entry *models.QueueEntry
}

// GetEntryInput contains parameters for retrieving a queue entry
type GetEntryInput struct {
	EntryID string
}

// UpdateEntryInput contains parameters for rewriting a queue entry
type UpdateEntryInput struct {
	Entry *models.QueueEntry
}

// QueuedEntriesOutput contains all queued entries, unordered
type QueuedEntriesOutput struct {
	Entries []*models.QueueEntry
}

// PromoteToPlayingInput contains parameters for claiming the slot
type PromoteToPlayingInput struct {
	EntryID string
}

// ForceNowPlayingInput contains parameters for a forced promotion
type ForceNowPlayingInput struct {
	EntryID string
}

// ClearNowPlayingInput contains parameters for releasing the slot
type ClearNowPlayingInput struct {
	EntryID string
}

// ClaimFileInput contains parameters for a filename claim
type ClaimFileInput struct {
	FileKey string
	EntryID string
}

// GetFileClaimInput contains parameters for reading a filename claim
type GetFileClaimInput struct {
	FileKey string
}

// ReleaseFileInput contains parameters for dropping a filename claim
type ReleaseFileInput struct {
	FileKey string
	EntryID string
}
