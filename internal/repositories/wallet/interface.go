package wallet

import (
	"context"

	"github.com/promnight/promnight/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/promnight/promnight/internal/repositories/wallet Repository

// Repository defines the interface for wallet request and notification
// persistence. Balances themselves live in the roster repository.
type Repository interface {
	// SaveRequest persists a wallet request and its indexes
	SaveRequest(ctx context.Context, input *SaveRequestInput) error

	// GetRequest retrieves a wallet request by ID
	GetRequest(ctx context.Context, input *GetRequestInput) (*models.WalletRequest, error)

	// UpdateRequest rewrites a wallet request record
	UpdateRequest(ctx context.Context, input *UpdateRequestInput) error

	// PendingRequests retrieves the pending requests of one type
	// directed at a target
	PendingRequests(ctx context.Context, input *PendingRequestsInput) (*PendingRequestsOutput, error)

	// ClaimPending atomically removes a request from its pending set.
	// Exactly one caller wins; everyone else sees claimed=false.
	ClaimPending(ctx context.Context, input *ClaimPendingInput) (bool, error)

	// RestorePending puts a claimed request back in its pending set,
	// used when a settlement attempt must leave the request pending
	RestorePending(ctx context.Context, input *RestorePendingInput) error

	// RequestsFor retrieves all requests directed at a character,
	// newest first
	RequestsFor(ctx context.Context, input *RequestsForInput) (*RequestsForOutput, error)

	// SaveNotification persists a transfer receipt
	SaveNotification(ctx context.Context, input *SaveNotificationInput) error

	// GetNotification retrieves a notification by ID
	GetNotification(ctx context.Context, input *GetNotificationInput) (*models.WalletNotification, error)

	// UpdateNotification rewrites a notification record
	UpdateNotification(ctx context.Context, input *UpdateNotificationInput) error

	// NotificationsFor retrieves a character's notifications, newest
	// first
	NotificationsFor(ctx context.Context, input *NotificationsForInput) (*NotificationsForOutput, error)

	// ClearAll deletes every request and notification, used on reseed
	ClearAll(ctx context.Context) error
}
