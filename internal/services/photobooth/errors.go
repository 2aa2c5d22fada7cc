package photobooth

import "errors"

// Define errors
var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrWrongImageCount   = errors.New("a photo strip needs exactly four images")
	ErrInvalidImage      = errors.New("image data is not valid base64")
	ErrStorageFailure    = errors.New("failed to store photo strip images")
)
