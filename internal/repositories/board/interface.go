package board

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/board Repository

// Repository defines the interface for message persistence
type Repository interface {
	// SaveMessage persists a message and its feed or thread indexes
	SaveMessage(ctx context.Context, input *SaveMessageInput) error

	// GetMessage retrieves a message by ID
	GetMessage(ctx context.Context, input *GetMessageInput) (*models.Message, error)

	// ListPublic retrieves the public feed, pinned entries first
	ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error)

	// ClearPublic deletes all public messages, DMs untouched
	ClearPublic(ctx context.Context) error

	// ThreadMessages retrieves a DM thread, most recent first
	ThreadMessages(ctx context.Context, input *ThreadMessagesInput) (*ThreadMessagesOutput, error)

	// UnreadCount counts unread DMs sent by the other party to the user
	UnreadCount(ctx context.Context, input *UnreadCountInput) (int64, error)

	// MarkRead flips the read flag on all DMs from the other party to
	// the user. Idempotent.
	MarkRead(ctx context.Context, input *MarkReadInput) error

	// ClearAll deletes every message, used on session reseed
	ClearAll(ctx context.Context) error
}
