package models

import "time"

// WalletRequestType distinguishes deferred sends from pull requests
type WalletRequestType string

const (
	// WalletRequestSend is a deferred transfer settled the next time
	// the target is observed active
	WalletRequestSend WalletRequestType = "send"

	// WalletRequestPull asks the target to approve an outgoing transfer
	WalletRequestPull WalletRequestType = "request"
)

// WalletRequestStatus is the lifecycle state of a wallet request
type WalletRequestStatus string

const (
	// WalletRequestPending awaits settlement or a decision
	WalletRequestPending WalletRequestStatus = "pending"

	// WalletRequestAccepted means the transfer completed
	WalletRequestAccepted WalletRequestStatus = "accepted"

	// WalletRequestDeclined means the request was closed without transfer
	WalletRequestDeclined WalletRequestStatus = "declined"
)

// WalletRequest is a deferred send or a pull request between wallets
type WalletRequest struct {
	// ID is the unique identifier for the request
	ID string `json:"id"`

	// RequesterID is the character that created the request
	RequesterID string `json:"requesterId"`

	// TargetID is the character the request is directed at
	TargetID string `json:"targetId"`

	// Amount is a positive number of prom bucks
	Amount int `json:"amount"`

	// Type is send or request
	Type WalletRequestType `json:"type"`

	// Status is pending, accepted or declined
	Status WalletRequestStatus `json:"status"`

	// CreatedAt is when the request was created
	CreatedAt time.Time `json:"createdAt"`

	// RespondedAt is when the request left pending
	RespondedAt time.Time `json:"respondedAt,omitempty"`
}

// WalletNotificationStatus is the read state of a notification
type WalletNotificationStatus string

const (
	// WalletNotificationUnread has not been dismissed yet
	WalletNotificationUnread WalletNotificationStatus = "unread"

	// WalletNotificationRead has been dismissed by the recipient
	WalletNotificationRead WalletNotificationStatus = "read"
)

// WalletNotification is the receipt shown after a completed transfer
type WalletNotification struct {
	// ID is the unique identifier for the notification
	ID string `json:"id"`

	// SenderID is the character the money came from
	SenderID string `json:"senderId"`

	// RecipientID is the character that received the money
	RecipientID string `json:"recipientId"`

	// Amount is the transferred amount
	Amount int `json:"amount"`

	// Status is unread until dismissed
	Status WalletNotificationStatus `json:"status"`

	// CreatedAt is when the transfer completed
	CreatedAt time.Time `json:"createdAt"`
}
