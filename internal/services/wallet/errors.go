package wallet

import "errors"

// Define errors
var (
	ErrInvalidAmount            = errors.New("amount must be a positive integer")
	ErrSelfTransfer             = errors.New("cannot transfer to yourself")
	ErrCharacterNotFound        = errors.New("character not found")
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrRequestNotFound          = errors.New("wallet request not found")
	ErrNotRequestTarget         = errors.New("request does not belong to this character")
	ErrRequestNotPending        = errors.New("request is not pending")
	ErrNotificationNotFound     = errors.New("wallet notification not found")
	ErrNotNotificationRecipient = errors.New("notification does not belong to this character")
)
