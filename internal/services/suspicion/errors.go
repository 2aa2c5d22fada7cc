package suspicion

import "errors"

// Define errors
var (
	ErrNotAuthenticated  = errors.New("caller is not logged in as a character")
	ErrPhaseLocked       = errors.New("accusations are locked until the first death")
	ErrSelfAccusation    = errors.New("cannot accuse yourself")
	ErrCharacterNotFound = errors.New("character not found")
	ErrAccusedNotAlive   = errors.New("accused character is not alive")
	ErrCooldownActive    = errors.New("accusation cooldown is still active")
)
