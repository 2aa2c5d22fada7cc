package board

import "github.com/promnight/promnight/internal/models"

// Display identity used for system-authored announcements
const (
	SystemName   = "Prom Committee"
	SystemAvatar = "🪩"

	// AnonymousName is shown for anonymous public posts
	AnonymousName = "Anonymous"
)

// PostPublicInput contains parameters for a public post
type PostPublicInput struct {
	SenderID  string
	Body      string
	Anonymous bool
}

// PostPublicOutput contains the stored message
type PostPublicOutput struct {
	Message *models.Message
}

// PostAnnouncementInput contains parameters for a system announcement
type PostAnnouncementInput struct {
	Body string
}

// PostAnnouncementOutput contains the stored message
type PostAnnouncementOutput struct {
	Message *models.Message
}

// ListPublicInput contains parameters for listing the feed
type ListPublicInput struct {
	Limit int
}

// PublicPost is a feed entry with its display identity resolved
type PublicPost struct {
	Message *models.Message `json:"message"`

	// AuthorName is the resolved display name: the sender's name,
	// "Anonymous", or the system identity
	AuthorName string `json:"authorName"`

	// AuthorAvatar is empty for anonymous posts
	AuthorAvatar string `json:"authorAvatar,omitempty"`
}

// ListPublicOutput contains the feed in display order
type ListPublicOutput struct {
	Posts []*PublicPost
}

// PostDMInput contains parameters for a private message
type PostDMInput struct {
	SenderID    string
	RecipientID string
	Body        string
}

// PostDMOutput contains the stored message
type PostDMOutput struct {
	Message *models.Message
}

// ThreadsForInput contains parameters for listing threads
type ThreadsForInput struct {
	UserID string
}

// Thread summarizes one conversation with another character
type Thread struct {
	OtherID     string `json:"otherId"`
	OtherName   string `json:"otherName"`
	OtherAvatar string `json:"otherAvatar"`

	// LastMessage is the most recent DM exchanged, nil when the pair
	// has no history
	LastMessage *models.Message `json:"lastMessage,omitempty"`

	// UnreadCount counts DMs from the other party not yet read
	UnreadCount int `json:"unreadCount"`
}

// ThreadsForOutput contains the threads, most recently active first,
// empty histories last
type ThreadsForOutput struct {
	Threads []*Thread
}

// ThreadMessagesInput contains parameters for reading a conversation
type ThreadMessagesInput struct {
	UserID  string
	OtherID string
	Limit   int
}

// ThreadMessagesOutput contains the conversation, most recent first
type ThreadMessagesOutput struct {
	Messages []*models.Message
}

// MarkReadInput contains parameters for marking a thread read
type MarkReadInput struct {
	UserID  string
	OtherID string
}
