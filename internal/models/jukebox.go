package models

import "time"

// QueueStatus represents the playback state of a queue entry
type QueueStatus string

const (
	// QueueStatusQueued indicates the entry is waiting to play
	QueueStatusQueued QueueStatus = "queued"

	// QueueStatusPlaying indicates the entry is currently playing.
	// At most one entry holds this status at any time.
	QueueStatusPlaying QueueStatus = "playing"

	// QueueStatusPlayed indicates the entry finished normally
	QueueStatusPlayed QueueStatus = "played"

	// QueueStatusSkipped indicates the entry was cut off
	QueueStatusSkipped QueueStatus = "skipped"
)

// PriorityForced is the reserved priority used by the phase-transition
// override. Normal requests use priority 0.
const PriorityForced = 1000

// Song is one playable track derived from the song directory
type Song struct {
	// Filename is the file name within the song directory
	Filename string `json:"filename"`

	// Title parsed from the filename stem
	Title string `json:"title"`

	// Artist parsed from the filename stem, "Unknown" if absent
	Artist string `json:"artist"`
}

// QueueEntry is one jukebox request and its playback lifecycle
type QueueEntry struct {
	// ID is the unique identifier for the entry
	ID string `json:"id"`

	// Song identifies the requested track
	Song Song `json:"song"`

	// RequesterID is the character who queued the track
	RequesterID string `json:"requesterId"`

	// Status is the entry's position in the playback state machine
	Status QueueStatus `json:"status"`

	// Priority orders playback, highest first
	Priority int `json:"priority"`

	// RequestedAt is when the entry was queued
	RequestedAt time.Time `json:"requestedAt"`

	// StartedAt is when playback began
	StartedAt time.Time `json:"startedAt,omitempty"`

	// EndedAt is when the entry reached a terminal status
	EndedAt time.Time `json:"endedAt,omitempty"`
}
