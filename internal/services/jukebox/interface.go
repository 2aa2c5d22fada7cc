package jukebox

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/jukebox Service

// Service defines the jukebox scheduler operations
type Service interface {
	// Catalog lists the player-visible songs sorted by artist then
	// title, theme track excluded
	Catalog(ctx context.Context) (*CatalogOutput, error)

	// Enqueue adds a song to the queue
	Enqueue(ctx context.Context, input *EnqueueInput) (*EnqueueOutput, error)

	// EnsureNowPlaying returns the playing entry, promoting the best
	// queued entry when the slot is free. Nil entry when idle.
	EnsureNowPlaying(ctx context.Context) (*EnsureNowPlayingOutput, error)

	// NowPlaying returns the playing entry without promoting
	NowPlaying(ctx context.Context) (*NowPlayingOutput, error)

	// UpNext returns the queued entries in play order
	UpNext(ctx context.Context, input *UpNextInput) (*UpNextOutput, error)

	// Finish marks a playing entry played. Stale signals are no-ops.
	Finish(ctx context.Context, input *FinishInput) error

	// Skip marks a playing entry skipped. Stale signals are no-ops.
	Skip(ctx context.Context, input *SkipInput) error

	// ForcePlay pre-empts normal playback with the theme track
	ForcePlay(ctx context.Context, input *ForcePlayInput) (*ForcePlayOutput, error)
}
