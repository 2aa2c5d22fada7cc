package suspicion

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/suspicion Service

// Service defines the accusation operations
type Service interface {
	// Accuse records an accusation against a character and returns
	// the accused's new suspicion score
	Accuse(ctx context.Context, input *AccuseInput) (*AccuseOutput, error)
}

// AccuseInput contains parameters for an accusation
type AccuseInput struct {
	AccuserID string
	AccusedID string
}

// AccuseOutput contains the accused's new suspicion score
type AccuseOutput struct {
	Score int
}
