package board

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/board Service

// Service defines the message board operations
type Service interface {
	// PostPublic posts a message on the shared feed
	PostPublic(ctx context.Context, input *PostPublicInput) (*PostPublicOutput, error)

	// PostAnnouncement posts a pinned, system-authored message
	PostAnnouncement(ctx context.Context, input *PostAnnouncementInput) (*PostAnnouncementOutput, error)

	// ListPublic returns the feed with display identities resolved,
	// pinned entries first
	ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error)

	// ClearPublic deletes all public messages
	ClearPublic(ctx context.Context) error

	// PostDM sends a private message
	PostDM(ctx context.Context, input *PostDMInput) (*PostDMOutput, error)

	// ThreadsFor lists one thread per other character, most recently
	// active first
	ThreadsFor(ctx context.Context, input *ThreadsForInput) (*ThreadsForOutput, error)

	// ThreadMessages returns one conversation, most recent first
	ThreadMessages(ctx context.Context, input *ThreadMessagesInput) (*ThreadMessagesOutput, error)

	// MarkRead marks all DMs from the other party as read
	MarkRead(ctx context.Context, input *MarkReadInput) error
}
