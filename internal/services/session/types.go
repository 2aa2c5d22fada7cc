package session

import (
	"github.com/promnight/promnight/internal/models"
	boardService "github.com/promnight/promnight/internal/services/board"
)

// LoginInput contains the code typed by the player
type LoginInput struct {
	LoginCode string
}

// LoginOutput contains the claimed character
type LoginOutput struct {
	Character *models.Character
}

// GetCharacterInput identifies the character to load
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput contains the character's current state
type GetCharacterOutput struct {
	Character *models.Character
}

// RosterOutput contains the roster in seed order
type RosterOutput struct {
	Characters []*models.Character
}

// KillInput identifies the character to kill
type KillInput struct {
	CharacterID string
}

// KillOutput reports the effect of the kill
type KillOutput struct {
	// Changed is false when the character was already dead
	Changed bool

	// PhaseStarted is true only on the kill that opened phase two
	PhaseStarted bool
}

// ReviveInput identifies the character to revive
type ReviveInput struct {
	CharacterID string
}

// ReviveOutput reports the effect of the revive
type ReviveOutput struct {
	// Changed is false when the character was already alive
	Changed bool
}

// StateOutput is the full shared session view
type StateOutput struct {
	Characters []*models.Character        `json:"characters"`
	PhaseTwo   bool                       `json:"phaseTwo"`
	Board      []*boardService.PublicPost `json:"board"`
	NowPlaying *models.QueueEntry         `json:"nowPlaying,omitempty"`
	UpNext     []*models.QueueEntry       `json:"upNext"`
}

// ReseedInput contains the replacement roster. A nil or empty roster
// installs the default one.
type ReseedInput struct {
	Characters []*models.Character
}
