package wallet

import "github.com/promnight/promnight/internal/models"

// Decision is the target's answer to a pull request
type Decision string

const (
	// DecisionAccept approves the transfer
	DecisionAccept Decision = "accept"

	// DecisionDecline closes the request without a transfer
	DecisionDecline Decision = "decline"
)

// TransferDirectInput contains parameters for an immediate transfer
type TransferDirectInput struct {
	FromID string
	ToID   string
	Amount int
}

// QueueSendInput contains parameters for a deferred send
type QueueSendInput struct {
	FromID string
	ToID   string
	Amount int
}

// QueueSendOutput contains the recorded request
type QueueSendOutput struct {
	Request *models.WalletRequest
}

// SettlePendingInput selects the character whose incoming sends settle
type SettlePendingInput struct {
	CharacterID string
}

// RequestFromInput contains parameters for a pull request
type RequestFromInput struct {
	RequesterID string
	TargetID    string
	Amount      int
}

// RequestFromOutput contains the recorded request
type RequestFromOutput struct {
	Request *models.WalletRequest
}

// RespondInput contains the target's decision on a pull request
type RespondInput struct {
	RequestID string
	TargetID  string
	Decision  Decision
}

// DismissNotificationInput contains parameters for dismissing a receipt
type DismissNotificationInput struct {
	NotificationID string
	CharacterID    string
}

// OverviewInput selects the character whose wallet state to load
type OverviewInput struct {
	CharacterID string
}

// OverviewOutput contains a character's wallet state
type OverviewOutput struct {
	Balance       int
	Notifications []*models.WalletNotification
	Requests      []*models.WalletRequest
}
