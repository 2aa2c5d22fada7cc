package wallet

import "github.com/promnight/promnight/internal/models"

// SaveRequestInput contains parameters for saving a wallet request
type SaveRequestInput struct {
	Request *models.WalletRequest
}

// GetRequestInput contains parameters for retrieving a wallet request
type GetRequestInput struct {
	RequestID string
}

// UpdateRequestInput contains parameters for rewriting a request
type UpdateRequestInput struct {
	Request *models.WalletRequest
}

// PendingRequestsInput selects pending requests of one type directed
// at a target
type PendingRequestsInput struct {
	TargetID string
	Type     models.WalletRequestType
}

// PendingRequestsOutput contains the matching pending requests
type PendingRequestsOutput struct {
	Requests []*models.WalletRequest
}

// ClaimPendingInput contains parameters for claiming a pending request
type ClaimPendingInput struct {
	RequestID string
	TargetID  string
	Type      models.WalletRequestType
}

// RestorePendingInput contains parameters for restoring a claim
type RestorePendingInput struct {
	Request *models.WalletRequest
}

// RequestsForInput contains parameters for listing a target's requests
type RequestsForInput struct {
	TargetID string
}

// RequestsForOutput contains the target's requests, newest first
type RequestsForOutput struct {
	Requests []*models.WalletRequest
}

// SaveNotificationInput contains parameters for saving a notification
type SaveNotificationInput struct {
	Notification *models.WalletNotification
}

// GetNotificationInput contains parameters for retrieving a notification
type GetNotificationInput struct {
	NotificationID string
}

// UpdateNotificationInput contains parameters for rewriting a
// notification
type UpdateNotificationInput struct {
	Notification *models.WalletNotification
}

// NotificationsForInput contains parameters for listing notifications
type NotificationsForInput struct {
	RecipientID string
}

// NotificationsForOutput contains the notifications, newest first
type NotificationsForOutput struct {
	Notifications []*models.WalletNotification
}
