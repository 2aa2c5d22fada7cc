package wallet

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/promnight/promnight/internal/services/wallet Service

// Service defines the ledger operations. Total currency is conserved
// by every successful operation.
type Service interface {
	// TransferDirect atomically moves money and writes a receipt for
	// the recipient
	TransferDirect(ctx context.Context, input *TransferDirectInput) error

	// QueueSend records a deferred transfer settled the next time the
	// target is observed active
	QueueSend(ctx context.Context, input *QueueSendInput) (*QueueSendOutput, error)

	// SettlePending settles every pending send directed at a
	// character. Idempotent.
	SettlePending(ctx context.Context, input *SettlePendingInput) error

	// RequestFrom records a pull request awaiting the target's
	// decision
	RequestFrom(ctx context.Context, input *RequestFromInput) (*RequestFromOutput, error)

	// Respond accepts or declines a pull request
	Respond(ctx context.Context, input *RespondInput) error

	// DismissNotification marks a receipt read
	DismissNotification(ctx context.Context, input *DismissNotificationInput) error

	// Overview settles pending sends and returns the character's
	// wallet state
	Overview(ctx context.Context, input *OverviewInput) (*OverviewOutput, error)
}
