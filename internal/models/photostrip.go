package models

import "time"

// PhotoStripImageCount is the exact number of images in a strip
const PhotoStripImageCount = 4

// PhotoStrip is one saved photo-booth submission. Strips survive a
// session reseed.
type PhotoStrip struct {
	// ID is the unique identifier for the strip
	ID string `json:"id"`

	// CharacterID is the character that submitted the strip
	CharacterID string `json:"characterId"`

	// ImageRefs are the stored references of the four images, in order
	ImageRefs []string `json:"imageRefs"`

	// CreatedAt is when the strip was saved
	CreatedAt time.Time `json:"createdAt"`
}
