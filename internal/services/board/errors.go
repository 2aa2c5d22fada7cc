package board

import "errors"

// Define errors
var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrEmptyBody         = errors.New("message body cannot be empty")
	ErrSelfDM            = errors.New("cannot send a dm to yourself")
)
