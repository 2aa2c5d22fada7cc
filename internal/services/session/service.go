package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/hub"
	boardRepo "github.com/promnight/promnight/internal/repositories/board"
	jukeboxRepo "github.com/promnight/promnight/internal/repositories/jukebox"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
	suspicionRepo "github.com/promnight/promnight/internal/repositories/suspicion"
	walletRepo "github.com/promnight/promnight/internal/repositories/wallet"
	boardService "github.com/promnight/promnight/internal/services/board"
	jukeboxService "github.com/promnight/promnight/internal/services/jukebox"
	walletService "github.com/promnight/promnight/internal/services/wallet"
)

// Config holds the dependencies of the session service
type Config struct {
	RosterRepo    rosterRepo.Repository
	BoardRepo     boardRepo.Repository
	WalletRepo    walletRepo.Repository
	JukeboxRepo   jukeboxRepo.Repository
	SuspicionRepo suspicionRepo.Repository

	BoardService   boardService.Service
	WalletService  walletService.Service
	JukeboxService jukeboxService.Service

	Hub   *hub.Hub
	Clock clock.Clock

	// SeedBalance is the starting balance used by Reseed when the
	// caller does not supply a roster. Zero means the default.
	SeedBalance int
}

// service implements the Service interface
type service struct {
	rosterRepo    rosterRepo.Repository
	boardRepo     boardRepo.Repository
	walletRepo    walletRepo.Repository
	jukeboxRepo   jukeboxRepo.Repository
	suspicionRepo suspicionRepo.Repository

	boardService   boardService.Service
	walletService  walletService.Service
	jukeboxService jukeboxService.Service

	hub         *hub.Hub
	clock       clock.Clock
	seedBalance int
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}
	if cfg.BoardRepo == nil {
		return nil, errors.New("board repository cannot be nil")
	}
	if cfg.WalletRepo == nil {
		return nil, errors.New("wallet repository cannot be nil")
	}
	if cfg.JukeboxRepo == nil {
		return nil, errors.New("jukebox repository cannot be nil")
	}
	if cfg.SuspicionRepo == nil {
		return nil, errors.New("suspicion repository cannot be nil")
	}
	if cfg.BoardService == nil {
		return nil, errors.New("board service cannot be nil")
	}
	if cfg.WalletService == nil {
		return nil, errors.New("wallet service cannot be nil")
	}
	if cfg.JukeboxService == nil {
		return nil, errors.New("jukebox service cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}

	return &service{
		rosterRepo:     cfg.RosterRepo,
		boardRepo:      cfg.BoardRepo,
		walletRepo:     cfg.WalletRepo,
		jukeboxRepo:    cfg.JukeboxRepo,
		suspicionRepo:  cfg.SuspicionRepo,
		boardService:   cfg.BoardService,
		walletService:  cfg.WalletService,
		jukeboxService: cfg.JukeboxService,
		hub:            cfg.Hub,
		clock:          cfg.Clock,
		seedBalance:    cfg.SeedBalance,
	}, nil
}

// Login resolves a login code to its character
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil || strings.TrimSpace(input.LoginCode) == "" {
		return nil, ErrInvalidLoginCode
	}

	character, err := s.rosterRepo.GetByLoginCode(ctx, &rosterRepo.GetByLoginCodeInput{
		LoginCode: strings.TrimSpace(input.LoginCode),
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrInvalidLoginCode
		}
		return nil, fmt.Errorf("failed to resolve login code: %w", err)
	}

	// Transfers queued while the player was away settle on login
	if err := s.walletService.SettlePending(ctx, &walletService.SettlePendingInput{
		CharacterID: character.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to settle pending transfers: %w", err)
	}

	character, err = s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: character.ID,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Character: character}, nil
}

// GetCharacter returns one character's current state. Loading a
// character counts as observing them active, so pending transfers
// directed at them settle first.
func (s *service) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrCharacterNotFound
	}

	if err := s.walletService.SettlePending(ctx, &walletService.SettlePendingInput{
		CharacterID: input.CharacterID,
	}); err != nil {
		return nil, fmt.Errorf("failed to settle pending transfers: %w", err)
	}

	character, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	return &GetCharacterOutput{Character: character}, nil
}

// Roster returns every character in seed order
func (s *service) Roster(ctx context.Context) (*RosterOutput, error) {
	listResult, err := s.rosterRepo.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	return &RosterOutput{Characters: listResult.Characters}, nil
}

// Kill marks a character dead. Killing an already dead character
// changes nothing and re-fires nothing.
func (s *service) Kill(ctx context.Context, input *KillInput) (*KillOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrCharacterNotFound
	}

	character, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	setResult, err := s.rosterRepo.SetAlive(ctx, &rosterRepo.SetAliveInput{
		CharacterID: character.ID,
		Alive:       false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark character dead: %w", err)
	}
	if !setResult.Changed {
		return &KillOutput{}, nil
	}

	// Death wipes the slate: accusations against the victim are gone
	if err := s.suspicionRepo.ClearFor(ctx, &suspicionRepo.ClearForInput{
		AccusedID: character.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear accusations: %w", err)
	}
	if err := s.rosterRepo.ResetSuspicion(ctx, &rosterRepo.ResetSuspicionInput{
		CharacterID: character.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to reset suspicion score: %w", err)
	}

	s.hub.EmitAll(hub.EventCharacterUpdate, map[string]any{
		"characterId": character.ID,
		"alive":       false,
	})
	s.hub.EmitAll(hub.EventSuspicionUpdate, map[string]any{
		"characterId": character.ID,
		"score":       0,
	})

	output := &KillOutput{Changed: true}

	// The atomic kill reported this as the first death, so this branch
	// runs exactly once per session even under concurrent kills
	if setResult.DeadCount == 1 {
		output.PhaseStarted = true

		if _, err := s.boardService.PostAnnouncement(ctx, &boardService.PostAnnouncementInput{
			Body: fmt.Sprintf("%s has been found dead. Accusations are now open.", character.Name),
		}); err != nil {
			return nil, fmt.Errorf("failed to post death announcement: %w", err)
		}

		if _, err := s.jukeboxService.ForcePlay(ctx, &jukeboxService.ForcePlayInput{}); err != nil {
			return nil, fmt.Errorf("failed to force theme playback: %w", err)
		}

		s.hub.EmitAll(hub.EventPhaseUpdate, map[string]any{"phaseTwo": true})
	}

	return output, nil
}

// Revive marks a character alive again
func (s *service) Revive(ctx context.Context, input *ReviveInput) (*ReviveOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrCharacterNotFound
	}

	if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	setResult, err := s.rosterRepo.SetAlive(ctx, &rosterRepo.SetAliveInput{
		CharacterID: input.CharacterID,
		Alive:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to revive character: %w", err)
	}
	if !setResult.Changed {
		return &ReviveOutput{}, nil
	}

	s.hub.EmitAll(hub.EventCharacterUpdate, map[string]any{
		"characterId": input.CharacterID,
		"alive":       true,
	})

	if setResult.DeadCount == 0 {
		s.hub.EmitAll(hub.EventPhaseUpdate, map[string]any{"phaseTwo": false})
	}

	return &ReviveOutput{Changed: true}, nil
}

// IsPhaseTwo reports whether any character is dead. Phase is always
// derived from the roster, never stored.
func (s *service) IsPhaseTwo(ctx context.Context) (bool, error) {
	deadCount, err := s.rosterRepo.DeadCount(ctx)
	if err != nil {
		return false, err
	}
	return deadCount > 0, nil
}

// State returns the full shared session view
func (s *service) State(ctx context.Context) (*StateOutput, error) {
	listResult, err := s.rosterRepo.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}

	phaseTwo, err := s.IsPhaseTwo(ctx)
	if err != nil {
		return nil, err
	}

	boardResult, err := s.boardService.ListPublic(ctx, &boardService.ListPublicInput{})
	if err != nil {
		return nil, err
	}

	playingResult, err := s.jukeboxService.EnsureNowPlaying(ctx)
	if err != nil {
		return nil, err
	}

	upNextResult, err := s.jukeboxService.UpNext(ctx, &jukeboxService.UpNextInput{})
	if err != nil {
		return nil, err
	}

	return &StateOutput{
		Characters: listResult.Characters,
		PhaseTwo:   phaseTwo,
		Board:      boardResult.Posts,
		NowPlaying: playingResult.Entry,
		UpNext:     upNextResult.Entries,
	}, nil
}

// Reseed wipes the session and installs a fresh roster. Photo strips
// are keepsakes and survive on purpose.
func (s *service) Reseed(ctx context.Context, input *ReseedInput) error {
	if input == nil {
		input = &ReseedInput{}
	}

	characters := input.Characters
	if len(characters) == 0 {
		characters = DefaultRoster(s.seedBalance)
	}

	if err := s.boardRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}
	if err := s.walletRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear wallet records: %w", err)
	}
	if err := s.jukeboxRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear jukebox queue: %w", err)
	}
	if err := s.suspicionRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear accusations: %w", err)
	}
	if err := s.rosterRepo.Reseed(ctx, &rosterRepo.ReseedInput{Characters: characters}); err != nil {
		return fmt.Errorf("failed to reseed roster: %w", err)
	}

	s.hub.EmitAll(hub.EventPhaseUpdate, map[string]any{"phaseTwo": false})
	s.hub.EmitAll(hub.EventBoardCleared, nil)
	s.hub.EmitAll(hub.EventJukeboxStop, nil)

	return nil
}
