package models

import "time"

// MessageKind distinguishes public feed posts from private DMs
type MessageKind string

const (
	// MessageKindPublic is a post on the shared public feed
	MessageKindPublic MessageKind = "public"

	// MessageKindDM is a private message between two characters
	MessageKindDM MessageKind = "dm"
)

// MaxMessageLen is the maximum message body length in code points.
// Longer bodies are truncated, not rejected.
const MaxMessageLen = 280

// Message is a public feed post or a private DM
type Message struct {
	// ID is the unique identifier for the message
	ID string `json:"id"`

	// Kind is public or dm
	Kind MessageKind `json:"kind"`

	// SenderID is empty for system-authored announcements
	SenderID string `json:"senderId,omitempty"`

	// RecipientID is set iff Kind is dm
	RecipientID string `json:"recipientId,omitempty"`

	// Body is the message text, truncated to MaxMessageLen code points
	Body string `json:"body"`

	// Anonymous hides the sender's identity on public posts
	Anonymous bool `json:"anonymous,omitempty"`

	// Read is the recipient's read flag, DMs only
	Read bool `json:"read,omitempty"`

	// Pinned keeps a public post at the top of the feed
	Pinned bool `json:"pinned,omitempty"`

	// CreatedAt is when the message was posted
	CreatedAt time.Time `json:"createdAt"`
}
