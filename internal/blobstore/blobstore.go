package blobstore

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/promnight/promnight/internal/blobstore Store

// Store persists opaque blobs and returns a reference the TV and
// player clients can load directly.
type Store interface {
	// Put stores data under key and returns its public reference
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
