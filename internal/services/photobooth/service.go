package photobooth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/promnight/promnight/internal/blobstore"
	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/common/uuid"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	photostripRepo "github.com/promnight/promnight/internal/repositories/photostrip"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
)

// Config holds the dependencies of the photo booth service
type Config struct {
	PhotoStripRepo photostripRepo.Repository
	RosterRepo     rosterRepo.Repository
	BlobStore      blobstore.Store
	Hub            *hub.Hub
	Clock          clock.Clock
	UUID           uuid.UUID
}

// service implements the Service interface
type service struct {
	photoStripRepo photostripRepo.Repository
	rosterRepo     rosterRepo.Repository
	blobStore      blobstore.Store
	hub            *hub.Hub
	clock          clock.Clock
	uuid           uuid.UUID
}

// New creates a new photo booth service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.PhotoStripRepo == nil {
		return nil, errors.New("photo strip repository cannot be nil")
	}
	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}
	if cfg.BlobStore == nil {
		return nil, errors.New("blob store cannot be nil")
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

	return &service{
		photoStripRepo: cfg.PhotoStripRepo,
		rosterRepo:     cfg.RosterRepo,
		blobStore:      cfg.BlobStore,
		hub:            cfg.Hub,
		clock:          cfg.Clock,
		uuid:           cfg.UUID,
	}, nil
}

// decodeImage strips an optional data URL prefix and decodes the
// base64 payload
func decodeImage(image string) ([]byte, error) {
	if _, encoded, found := strings.Cut(image, ","); found && strings.HasPrefix(image, "data:") {
		image = encoded
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(image))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}

	return data, nil
}

// SaveStrip stores a four-image strip
func (s *service) SaveStrip(ctx context.Context, input *SaveStripInput) (*SaveStripOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrCharacterNotFound
	}
	if len(input.Images) != models.PhotoStripImageCount {
		return nil, ErrWrongImageCount
	}

	if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	strip := &models.PhotoStrip{
		ID:          s.uuid.NewUUID(),
		CharacterID: input.CharacterID,
		ImageRefs:   make([]string, 0, models.PhotoStripImageCount),
		CreatedAt:   s.clock.Now(),
	}

	for i, image := range input.Images {
		data, err := decodeImage(image)
		if err != nil {
			return nil, err
		}

		ref, err := s.blobStore.Put(ctx, fmt.Sprintf("strips/%s/%d.jpg", strip.ID, i+1), data, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStorageFailure, err)
		}
		strip.ImageRefs = append(strip.ImageRefs, ref)
	}

	if err := s.photoStripRepo.SaveStrip(ctx, &photostripRepo.SaveStripInput{Strip: strip}); err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventPhotoStrip, map[string]any{
		"stripId":     strip.ID,
		"characterId": strip.CharacterID,
	})

	return &SaveStripOutput{Strip: strip}, nil
}

// ListStrips returns all saved strips, newest first
func (s *service) ListStrips(ctx context.Context) (*ListStripsOutput, error) {
	listResult, err := s.photoStripRepo.ListStrips(ctx)
	if err != nil {
		return nil, err
	}
	return &ListStripsOutput{Strips: listResult.Strips}, nil
}
