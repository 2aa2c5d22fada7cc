package photobooth

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/photobooth Service

// Service defines the photo booth operations
type Service interface {
	// SaveStrip stores a four-image strip and returns its record
	SaveStrip(ctx context.Context, input *SaveStripInput) (*SaveStripOutput, error)

	// ListStrips returns all saved strips, newest first
	ListStrips(ctx context.Context) (*ListStripsOutput, error)
}

// SaveStripInput contains parameters for saving a strip
type SaveStripInput struct {
	CharacterID string

	// Images are the four frames as base64 data, in strip order.
	// A data URL prefix is accepted and stripped.
	Images []string
}

// SaveStripOutput contains the stored strip
type SaveStripOutput struct {
	Strip *models.PhotoStrip
}

// ListStripsOutput contains the strips, newest first
type ListStripsOutput struct {
	Strips []*models.PhotoStrip
}
