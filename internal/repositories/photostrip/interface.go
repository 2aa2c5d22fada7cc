package photostrip

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/photostrip Repository

// Repository defines the interface for photo strip metadata. Strips
// deliberately survive a session reseed, so there is no ClearAll.
type Repository interface {
	// SaveStrip persists a photo strip record
	SaveStrip(ctx context.Context, input *SaveStripInput) error

	// ListStrips retrieves all strips, newest first
	ListStrips(ctx context.Context) (*ListStripsOutput, error)
}

// SaveStripInput contains parameters for saving a photo strip
type SaveStripInput struct {
	Strip *models.PhotoStrip
}

// ListStripsOutput contains the strips, newest first
type ListStripsOutput struct {
	Strips []*models.PhotoStrip
}
