package session

import "errors"

// Define errors
var (
	ErrInvalidLoginCode  = errors.New("login code does not match any character")
	ErrCharacterNotFound = errors.New("character not found")
)
