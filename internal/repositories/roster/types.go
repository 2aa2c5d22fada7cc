package roster

import "github.com/promnight/promnight/internal/models"

// SaveCharacterInput contains parameters for saving a character
type SaveCharacterInput struct {
	Character *models.Character
}

// GetCharacterInput contains parameters for retrieving a character
type GetCharacterInput struct {
	CharacterID string
}

// GetByLoginCodeInput contains parameters for a login-code lookup
type GetByLoginCodeInput struct {
	LoginCode string
}

// ListCharactersOutput contains the roster in seed order
type ListCharactersOutput struct {
	Characters []*models.Character
}

// SetAliveInput contains parameters for a kill or revive
type SetAliveInput struct {
	CharacterID string
	Alive       bool
}

// SetAliveOutput reports the effect of a kill or revive
type SetAliveOutput struct {
	// Changed is false when the flag already held the requested value
	Changed bool

	// DeadCount is the number of dead characters after the mutation
	DeadCount int64
}

// TransferInput contains parameters for an atomic balance transfer
type TransferInput struct {
	FromID string
	ToID   string
	Amount int
}

// AddSuspicionInput contains parameters for a suspicion adjustment
type AddSuspicionInput struct {
	CharacterID string
	Delta       int
}

// AddSuspicionOutput contains the new suspicion score
type AddSuspicionOutput struct {
	Score int
}

// ResetSuspicionInput contains parameters for a suspicion reset
type ResetSuspicionInput struct {
	CharacterID string
}

// ReseedInput contains the replacement roster
type ReseedInput struct {
	Characters []*models.Character
}
