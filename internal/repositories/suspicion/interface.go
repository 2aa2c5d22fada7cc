package suspicion

import (
	"context"
	"time"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/suspicion Repository

// Repository defines the interface for accusation persistence. The
// cooldown clock lives here too, keyed by accuser, so there is exactly
// one authoritative cooldown source per character.
type Repository interface {
	// AppendAccusation records an accusation and stamps the accuser's
	// cooldown clock
	AppendAccusation(ctx context.Context, input *AppendAccusationInput) error

	// CountFor counts the accusations against a character
	CountFor(ctx context.Context, input *CountForInput) (int64, error)

	// LastAccusedAt returns when the accuser last accused, zero time
	// if never
	LastAccusedAt(ctx context.Context, input *LastAccusedAtInput) (time.Time, error)

	// ClearFor deletes all accusations against a character, used when
	// the character is killed
	ClearFor(ctx context.Context, input *ClearForInput) error

	// ClearAll deletes every accusation and cooldown, used on reseed
	ClearAll(ctx context.Context) error
}

// AppendAccusationInput contains parameters for recording an accusation
type AppendAccusationInput struct {
	Accusation *models.Accusation
}

// CountForInput contains parameters for counting accusations
type CountForInput struct {
	AccusedID string
}

// LastAccusedAtInput contains parameters for reading a cooldown clock
type LastAccusedAtInput struct {
	AccuserID string
}

// ClearForInput contains parameters for clearing a character's log
type ClearForInput struct {
	AccusedID string
}
