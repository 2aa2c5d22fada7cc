package suspicion

import (
	"context"
	"errors"
	"time"

	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/common/uuid"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
	suspicionRepo "github.com/promnight/promnight/internal/repositories/suspicion"
)

// DefaultCooldown is the minimum delay between two accusations by the
// same character.
const DefaultCooldown = 300 * time.Second

// Config holds the dependencies of the suspicion service
type Config struct {
	SuspicionRepo suspicionRepo.Repository
	RosterRepo    rosterRepo.Repository
	Hub           *hub.Hub
	Clock         clock.Clock
	UUID          uuid.UUID

	// Cooldown overrides DefaultCooldown when positive
	Cooldown time.Duration
}

// service implements the Service interface
type service struct {
	suspicionRepo suspicionRepo.Repository
	rosterRepo    rosterRepo.Repository
	hub           *hub.Hub
	clock         clock.Clock
	uuid          uuid.UUID
	cooldown      time.Duration
}

// New creates a new suspicion service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SuspicionRepo == nil {
		return nil, errors.New("suspicion repository cannot be nil")
	}
	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.UUID == nil {
		cfg.UUID = uuid.New()
	}

	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &service{
		suspicionRepo: cfg.SuspicionRepo,
		rosterRepo:    cfg.RosterRepo,
		hub:           cfg.Hub,
		clock:         cfg.Clock,
		uuid:          cfg.UUID,
		cooldown:      cooldown,
	}, nil
}

// Accuse records an accusation. Each precondition is a distinct
// rejection; nothing is written unless all of them pass.
func (s *service) Accuse(ctx context.Context, input *AccuseInput) (*AccuseOutput, error) {
	if input == nil || input.AccuserID == "" {
		return nil, ErrNotAuthenticated
	}

	if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.AccuserID,
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	deadCount, err := s.rosterRepo.DeadCount(ctx)
	if err != nil {
		return nil, err
	}
	if deadCount == 0 {
		return nil, ErrPhaseLocked
	}

	if input.AccuserID == input.AccusedID {
		return nil, ErrSelfAccusation
	}

	accused, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.AccusedID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	if !accused.Alive {
		return nil, ErrAccusedNotAlive
	}

	now := s.clock.Now()
	lastAccused, err := s.suspicionRepo.LastAccusedAt(ctx, &suspicionRepo.LastAccusedAtInput{
		AccuserID: input.AccuserID,
	})
	if err != nil {
		return nil, err
	}
	if !lastAccused.IsZero() && now.Sub(lastAccused) < s.cooldown {
		return nil, ErrCooldownActive
	}

	accusation := &models.Accusation{
		ID:        s.uuid.NewUUID(),
		AccuserID: input.AccuserID,
		AccusedID: input.AccusedID,
		Points:    1,
		CreatedAt: now,
	}
	if err := s.suspicionRepo.AppendAccusation(ctx, &suspicionRepo.AppendAccusationInput{
		Accusation: accusation,
	}); err != nil {
		return nil, err
	}

	score, err := s.rosterRepo.AddSuspicion(ctx, &rosterRepo.AddSuspicionInput{
		CharacterID: input.AccusedID,
		Delta:       accusation.Points,
	})
	if err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventSuspicionUpdate, map[string]any{
		"characterId": input.AccusedID,
		"score":       score.Score,
	})

	return &AccuseOutput{Score: score.Score}, nil
}
