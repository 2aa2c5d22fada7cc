package httpapi

import (
	"github.com/promnight/promnight/internal/models"
	boardService "github.com/promnight/promnight/internal/services/board"
)

// CharacterView is the public shape of a character. Login codes never
// leave the server.
type CharacterView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RoleTag        string `json:"roleTag"`
	Bio            string `json:"bio"`
	AvatarGlyph    string `json:"avatarGlyph"`
	Alive          bool   `json:"alive"`
	SuspicionScore int    `json:"suspicionScore"`
	Balance        int    `json:"balance"`
	Seq            int    `json:"seq"`
}

func toCharacterView(character *models.Character) *CharacterView {
	if character == nil {
		return nil
	}
	return &CharacterView{
		ID:             character.ID,
		Name:           character.Name,
		RoleTag:        character.RoleTag,
		Bio:            character.Bio,
		AvatarGlyph:    character.AvatarGlyph,
		Alive:          character.Alive,
		SuspicionScore: character.SuspicionScore,
		Balance:        character.Balance,
		Seq:            character.Seq,
	}
}

func toCharacterViews(characters []*models.Character) []*CharacterView {
	views := make([]*CharacterView, 0, len(characters))
	for _, character := range characters {
		views = append(views, toCharacterView(character))
	}
	return views
}

// StateView is the public shape of the shared session state
type StateView struct {
	Characters []*CharacterView           `json:"characters"`
	PhaseTwo   bool                       `json:"phaseTwo"`
	Board      []*boardService.PublicPost `json:"board"`
	NowPlaying *models.QueueEntry         `json:"nowPlaying,omitempty"`
	UpNext     []*models.QueueEntry       `json:"upNext"`
}
