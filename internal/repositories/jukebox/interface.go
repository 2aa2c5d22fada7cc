package jukebox

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/jukebox Repository

// Repository defines the interface for queue entry persistence. The
// now-playing slot and the per-file claims are single Redis keys so
// promotion and duplicate suppression stay atomic.
type Repository interface {
	// SaveEntry persists a queue entry
	SaveEntry(ctx context.Context, input *SaveEntryInput) error

	// GetEntry retrieves a queue entry by ID
	GetEntry(ctx context.Context, input *GetEntryInput) (*models.QueueEntry, error)

	// UpdateEntry rewrites a queue entry record
	UpdateEntry(ctx context.Context, input *UpdateEntryInput) error

	// QueuedEntries retrieves all entries currently queued
	QueuedEntries(ctx context.Context) (*QueuedEntriesOutput, error)

	// NowPlaying retrieves the playing entry, nil when idle
	NowPlaying(ctx context.Context) (*models.QueueEntry, error)

	// PromoteToPlaying claims the now-playing slot for an entry.
	// Returns false when another entry already holds the slot.
	PromoteToPlaying(ctx context.Context, input *PromoteToPlayingInput) (bool, error)

	// ForceNowPlaying unconditionally installs an entry in the
	// now-playing slot and returns the ID of the entry it displaced,
	// empty when the slot was free
	ForceNowPlaying(ctx context.Context, input *ForceNowPlayingInput) (string, error)

	// ClearNowPlaying releases the slot iff the given entry holds it.
	// Returns false on a stale signal.
	ClearNowPlaying(ctx context.Context, input *ClearNowPlayingInput) (bool, error)

	// ClaimFile reserves a filename for an entry, rejecting duplicates
	// while the file is queued or playing
	ClaimFile(ctx context.Context, input *ClaimFileInput) (bool, error)

	// GetFileClaim returns the entry ID holding a filename claim
	GetFileClaim(ctx context.Context, input *GetFileClaimInput) (string, error)

	// ReleaseFile drops a filename claim iff the given entry holds it
	ReleaseFile(ctx context.Context, input *ReleaseFileInput) error

	// ClearAll deletes the whole queue, used on session reseed
	ClearAll(ctx context.Context) error
}
