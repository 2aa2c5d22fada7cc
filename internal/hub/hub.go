package hub

import (
	"sync"
)

// Event names delivered to viewers. Delivery is best-effort and
// at-least-once; clients reconcile through the full-state endpoint.
const (
	EventBoardUpdate     = "board_update"
	EventBoardCleared    = "board_cleared"
	EventDM              = "dm"
	EventSuspicionUpdate = "suspicion_update"
	EventCharacterUpdate = "character_update"
	EventPhaseUpdate     = "phase_update"
	EventNowPlaying      = "now_playing"
	EventQueueUpdate     = "queue_update"
	EventJukeboxStop     = "jukebox_stop"
	EventPhotoStrip      = "photo_strip"
	EventAnnouncement    = "announcement"
	EventWalletUpdate    = "wallet_update"
)

// Event is one state-change notification
type Event struct {
	// Name identifies the kind of change
	Name string `json:"name"`

	// Payload is a small JSON-encodable summary of the change
	Payload any `json:"payload,omitempty"`
}

// clientBuffer is the per-client event buffer. A client that cannot
// drain this many events starts losing them; the polling fallback
// covers the gap.
const clientBuffer = 32

// Client is one subscribed viewer connection
type Client struct {
	// CharacterID scopes private deliveries, empty for TV-style
	// viewers that only receive broadcast events
	CharacterID string

	events chan Event
}

// Events returns the client's receive channel
func (c *Client) Events() <-chan Event {
	return c.events
}

// Hub fans state-change events out to all subscribed viewers and to
// per-character private channels. Emitting never blocks a mutation:
// slow clients drop events instead.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// New creates an empty hub
func New() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

// Subscribe registers a viewer. characterID may be empty for viewers
// without a private channel.
func (h *Hub) Subscribe(characterID string) *Client {
	client := &Client{
		CharacterID: characterID,
		events:      make(chan Event, clientBuffer),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	return client
}

// Unsubscribe removes a viewer and closes its channel
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.events)
	}
	h.mu.Unlock()
}

// EmitAll delivers an event to every subscribed viewer
func (h *Hub) EmitAll(name string, payload any) {
	h.deliver(Event{Name: name, Payload: payload}, "")
}

// EmitTo delivers an event to one character's private channel. A
// character with several open connections receives it on each.
func (h *Hub) EmitTo(characterID, name string, payload any) {
	if characterID == "" {
		return
	}
	h.deliver(Event{Name: name, Payload: payload}, characterID)
}

func (h *Hub) deliver(event Event, characterID string) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if characterID != "" && client.CharacterID != characterID {
			continue
		}
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	// Send without holding the lock; drop instead of blocking
	for _, client := range targets {
		select {
		case client.events <- event:
		default:
		}
	}
}
