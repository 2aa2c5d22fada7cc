package wallet

import (
	"context"
	"errors"

	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/common/uuid"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
	walletRepo "github.com/promnight/promnight/internal/repositories/wallet"
)

// Config holds the dependencies of the wallet service
type Config struct {
	WalletRepo walletRepo.Repository
	RosterRepo rosterRepo.Repository
	Hub        *hub.Hub
	Clock      clock.Clock
	UUID       uuid.UUID
}

// service implements the Service interface
type service struct {
	walletRepo walletRepo.Repository
	rosterRepo rosterRepo.Repository
	hub        *hub.Hub
	clock      clock.Clock
	uuid       uuid.UUID
}

// New creates a new wallet service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.WalletRepo == nil {
		return nil, errors.New("wallet repository cannot be nil")
	}
	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.UUID == nil {
		cfg.UUID = uuid.New()
	}

	return &service{
		walletRepo: cfg.WalletRepo,
		rosterRepo: cfg.RosterRepo,
		hub:        cfg.Hub,
		clock:      cfg.Clock,
		uuid:       cfg.UUID,
	}, nil
}

// validateTransfer runs the shared validation and existence checks
func (s *service) validateTransfer(ctx context.Context, fromID, toID string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSelfTransfer
	}

	for _, characterID := range []string{fromID, toID} {
		if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
			CharacterID: characterID,
		}); err != nil {
			if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
				return ErrCharacterNotFound
			}
			return err
		}
	}

	return nil
}

// transfer moves the money and writes the recipient's receipt. The
// balance check and both balance changes are one atomic step in the
// roster repository.
func (s *service) transfer(ctx context.Context, fromID, toID string, amount int) error {
	err := s.rosterRepo.Transfer(ctx, &rosterRepo.TransferInput{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrInsufficientBalance) {
			return ErrInsufficientBalance
		}
		return err
	}

	notification := &models.WalletNotification{
		ID:          s.uuid.NewUUID(),
		SenderID:    fromID,
		RecipientID: toID,
		Amount:      amount,
		Status:      models.WalletNotificationUnread,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.walletRepo.SaveNotification(ctx, &walletRepo.SaveNotificationInput{
		Notification: notification,
	}); err != nil {
		return err
	}

	payload := map[string]any{
		"senderId":    fromID,
		"recipientId": toID,
		"amount":      amount,
	}
	s.hub.EmitTo(toID, hub.EventWalletUpdate, payload)
	s.hub.EmitTo(fromID, hub.EventWalletUpdate, payload)

	return nil
}

// TransferDirect atomically moves money between two characters
func (s *service) TransferDirect(ctx context.Context, input *TransferDirectInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if err := s.validateTransfer(ctx, input.FromID, input.ToID, input.Amount); err != nil {
		return err
	}

	return s.transfer(ctx, input.FromID, input.ToID, input.Amount)
}

// QueueSend records a deferred transfer
func (s *service) QueueSend(ctx context.Context, input *QueueSendInput) (*QueueSendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := s.validateTransfer(ctx, input.FromID, input.ToID, input.Amount); err != nil {
		return nil, err
	}

	request := &models.WalletRequest{
		ID:          s.uuid.NewUUID(),
		RequesterID: input.FromID,
		TargetID:    input.ToID,
		Amount:      input.Amount,
		Type:        models.WalletRequestSend,
		Status:      models.WalletRequestPending,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.walletRepo.SaveRequest(ctx, &walletRepo.SaveRequestInput{Request: request}); err != nil {
		return nil, err
	}

	return &QueueSendOutput{Request: request}, nil
}

// SettlePending settles every pending send directed at a character.
// The pending-set claim makes repeated and concurrent calls safe: a
// request settles at most once.
func (s *service) SettlePending(ctx context.Context, input *SettlePendingInput) error {
	if input == nil || input.CharacterID == "" {
		return errors.New("input and character ID cannot be empty")
	}

	pending, err := s.walletRepo.PendingRequests(ctx, &walletRepo.PendingRequestsInput{
		TargetID: input.CharacterID,
		Type:     models.WalletRequestSend,
	})
	if err != nil {
		return err
	}

	for _, request := range pending.Requests {
		claimed, err := s.walletRepo.ClaimPending(ctx, &walletRepo.ClaimPendingInput{
			RequestID: request.ID,
			TargetID:  request.TargetID,
			Type:      request.Type,
		})
		if err != nil {
			return err
		}
		if !claimed {
			continue
		}

		err = s.transfer(ctx, request.RequesterID, request.TargetID, request.Amount)
		switch {
		case err == nil:
			request.Status = models.WalletRequestAccepted
		case errors.Is(err, ErrInsufficientBalance):
			// The sender can no longer cover it; close quietly but
			// tell the sender their payment bounced
			request.Status = models.WalletRequestDeclined
			s.hub.EmitTo(request.RequesterID, hub.EventWalletUpdate, map[string]any{
				"requestId": request.ID,
				"declined":  true,
			})
		default:
			if restoreErr := s.walletRepo.RestorePending(ctx, &walletRepo.RestorePendingInput{
				Request: request,
			}); restoreErr != nil {
				return restoreErr
			}
			return err
		}

		request.RespondedAt = s.clock.Now()
		if err := s.walletRepo.UpdateRequest(ctx, &walletRepo.UpdateRequestInput{
			Request: request,
		}); err != nil {
			return err
		}
	}

	return nil
}

// RequestFrom records a pull request awaiting the target's decision
func (s *service) RequestFrom(ctx context.Context, input *RequestFromInput) (*RequestFromOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := s.validateTransfer(ctx, input.TargetID, input.RequesterID, input.Amount); err != nil {
		return nil, err
	}

	request := &models.WalletRequest{
		ID:          s.uuid.NewUUID(),
		RequesterID: input.RequesterID,
		TargetID:    input.TargetID,
		Amount:      input.Amount,
		Type:        models.WalletRequestPull,
		Status:      models.WalletRequestPending,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.walletRepo.SaveRequest(ctx, &walletRepo.SaveRequestInput{Request: request}); err != nil {
		return nil, err
	}

	s.hub.EmitTo(input.TargetID, hub.EventWalletUpdate, map[string]any{
		"requestId": request.ID,
	})

	return &RequestFromOutput{Request: request}, nil
}

// Respond accepts or declines a pull request. A failed accept leaves
// the request pending so the target can retry or decline.
func (s *service) Respond(ctx context.Context, input *RespondInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	request, err := s.walletRepo.GetRequest(ctx, &walletRepo.GetRequestInput{
		RequestID: input.RequestID,
	})
	if err != nil {
		if errors.Is(err, walletRepo.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if request.TargetID != input.TargetID {
		return ErrNotRequestTarget
	}
	if request.Type != models.WalletRequestPull || request.Status != models.WalletRequestPending {
		return ErrRequestNotPending
	}

	claimed, err := s.walletRepo.ClaimPending(ctx, &walletRepo.ClaimPendingInput{
		RequestID: request.ID,
		TargetID:  request.TargetID,
		Type:      request.Type,
	})
	if err != nil {
		return err
	}
	if !claimed {
		return ErrRequestNotPending
	}

	if input.Decision == DecisionAccept {
		if err := s.transfer(ctx, request.TargetID, request.RequesterID, request.Amount); err != nil {
			if restoreErr := s.walletRepo.RestorePending(ctx, &walletRepo.RestorePendingInput{
				Request: request,
			}); restoreErr != nil {
				return restoreErr
			}
			return err
		}
		request.Status = models.WalletRequestAccepted
	} else {
		request.Status = models.WalletRequestDeclined
	}

	request.RespondedAt = s.clock.Now()
	if err := s.walletRepo.UpdateRequest(ctx, &walletRepo.UpdateRequestInput{Request: request}); err != nil {
		return err
	}

	s.hub.EmitTo(request.RequesterID, hub.EventWalletUpdate, map[string]any{
		"requestId": request.ID,
		"status":    request.Status,
	})

	return nil
}

// DismissNotification marks a receipt read
func (s *service) DismissNotification(ctx context.Context, input *DismissNotificationInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	notification, err := s.walletRepo.GetNotification(ctx, &walletRepo.GetNotificationInput{
		NotificationID: input.NotificationID,
	})
	if err != nil {
		if errors.Is(err, walletRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}

	if notification.RecipientID != input.CharacterID {
		return ErrNotNotificationRecipient
	}

	notification.Status = models.WalletNotificationRead

	return s.walletRepo.UpdateNotification(ctx, &walletRepo.UpdateNotificationInput{
		Notification: notification,
	})
}

// Overview settles pending sends and returns the wallet state
func (s *service) Overview(ctx context.Context, input *OverviewInput) (*OverviewOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	// Loading a wallet counts as observing its owner
	if err := s.SettlePending(ctx, &SettlePendingInput{CharacterID: input.CharacterID}); err != nil {
		return nil, err
	}

	character, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	notifications, err := s.walletRepo.NotificationsFor(ctx, &walletRepo.NotificationsForInput{
		RecipientID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	requests, err := s.walletRepo.RequestsFor(ctx, &walletRepo.RequestsForInput{
		TargetID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	return &OverviewOutput{
		Balance:       character.Balance,
		Notifications: notifications.Notifications,
		Requests:      requests.Requests,
	}, nil
}
