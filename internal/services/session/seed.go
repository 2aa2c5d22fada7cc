package session

import (
	"github.com/gosimple/slug"

	"github.com/promnight/promnight/internal/models"
)

// DefaultSeedBalance is the wallet balance every seeded character
// starts with
const DefaultSeedBalance = 500

type seedCharacter struct {
	name      string
	roleTag   string
	bio       string
	avatar    string
	loginCode string
}

var defaultSeed = []seedCharacter{
	{"Alex Neon", "DJ", "Spins synthwave and secrets in equal measure.", "😎", "ALEX9"},
	{"Casey Cassette", "AV Club President", "Records everything. Has tapes nobody has seen.", "🎧", "CASEY9"},
	{"Jamie Jocks", "Football Star", "Peaked tonight and knows it.", "🏈", "JAMIE9"},
	{"Morgan Makeup", "Beauty Influencer", "Contours by day, schemes by night.", "💄", "MORGN9"},
	{"Riley Rebel", "Detention Regular", "Knows every locked door in the school.", "🧷", "RILEY9"},
	{"Taylor Tiara", "Prom Queen Favorite", "Would do anything for the crown. Anything.", "👑", "TAYLR9"},
	{"Sam Snapshot", "Yearbook Photographer", "Caught something on camera last week.", "📸", "SNAP9"},
	{"Drew Detention", "Hall Monitor", "Writes everyone up. Everyone remembers.", "🚬", "DREW9"},
	{"Jordan Jetset", "Exchange Student", "Nobody can verify where they came from.", "🕶️", "JORD9"},
}

// DefaultRoster builds the stock prom roster. IDs are derived from the
// names so they stay stable across reseeds.
func DefaultRoster(balance int) []*models.Character {
	if balance <= 0 {
		balance = DefaultSeedBalance
	}

	characters := make([]*models.Character, 0, len(defaultSeed))
	for i, seed := range defaultSeed {
		characters = append(characters, &models.Character{
			ID:          slug.Make(seed.name),
			Name:        seed.name,
			RoleTag:     seed.roleTag,
			Bio:         seed.bio,
			AvatarGlyph: seed.avatar,
			Alive:       true,
			Balance:     balance,
			LoginCode:   seed.loginCode,
			Seq:         i + 1,
		})
	}

	return characters
}
