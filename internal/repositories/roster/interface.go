package roster

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/roster Repository

// Repository defines the interface for roster persistence
type Repository interface {
	// SaveCharacter persists a character record
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) error

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error)

	// GetByLoginCode retrieves a character by login code, case-insensitive
	GetByLoginCode(ctx context.Context, input *GetByLoginCodeInput) (*models.Character, error)

	// ListCharacters retrieves the full roster in seed order
	ListCharacters(ctx context.Context) (*ListCharactersOutput, error)

	// SetAlive flips a character's alive flag and reports whether the
	// flag changed plus the dead count after the mutation
	SetAlive(ctx context.Context, input *SetAliveInput) (*SetAliveOutput, error)

	// DeadCount returns the number of dead characters
	DeadCount(ctx context.Context) (int64, error)

	// Transfer atomically moves balance between two characters
	Transfer(ctx context.Context, input *TransferInput) error

	// AddSuspicion adjusts a character's suspicion counter
	AddSuspicion(ctx context.Context, input *AddSuspicionInput) (*AddSuspicionOutput, error)

	// ResetSuspicion zeroes a character's suspicion counter
	ResetSuspicion(ctx context.Context, input *ResetSuspicionInput) error

	// Reseed atomically replaces the whole roster
	Reseed(ctx context.Context, input *ReseedInput) error
}
