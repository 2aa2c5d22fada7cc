package session

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/session Service

// Service defines the session lifecycle operations
type Service interface {
	// Login resolves a login code to its character, settling any
	// transfers that were waiting for the player
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetCharacter returns one character's current state, settling
	// pending transfers first
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// Roster returns every character in seed order
	Roster(ctx context.Context) (*RosterOutput, error)

	// Kill marks a character dead. The first kill of the session flips
	// the session into its second phase exactly once.
	Kill(ctx context.Context, input *KillInput) (*KillOutput, error)

	// Revive marks a character alive again
	Revive(ctx context.Context, input *ReviveInput) (*ReviveOutput, error)

	// IsPhaseTwo reports whether any character is dead
	IsPhaseTwo(ctx context.Context) (bool, error)

	// State returns the full shared view used by the TV display and by
	// reconnecting clients
	State(ctx context.Context) (*StateOutput, error)

	// Reseed wipes the session and installs a fresh roster
	Reseed(ctx context.Context, input *ReseedInput) error
}
