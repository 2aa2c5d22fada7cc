package board

import "github.com/promnight/promnight/internal/models"

// SaveMessageInput contains parameters for saving a message
type SaveMessageInput struct {
	Message *models.Message
}

// GetMessageInput contains parameters for retrieving a message
type GetMessageInput struct {
	MessageID string
}

// ListPublicInput contains parameters for listing the public feed
type ListPublicInput struct {
	// Limit caps the number of returned messages, 0 means no cap
	Limit int
}

// ListPublicOutput contains the public feed in display order
type ListPublicOutput struct {
	Messages []*models.Message
}

// ThreadMessagesInput contains parameters for reading a DM thread
type ThreadMessagesInput struct {
	UserID  string
	OtherID string

	// Limit caps the number of returned messages, 0 means no cap
	Limit int
}

// ThreadMessagesOutput contains a DM thread, most recent first
type ThreadMessagesOutput struct {
	Messages []*models.Message
}

// UnreadCountInput contains parameters for an unread count
type UnreadCountInput struct {
	UserID  string
	OtherID string
}

// MarkReadInput contains parameters for marking a thread read
type MarkReadInput struct {
	UserID  string
	OtherID string
}
