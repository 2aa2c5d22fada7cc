package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promnight/promnight/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	requestKeyPrefix       = "wallet_request:"
	requestsForKeyPrefix   = "wallet_requests:for:"
	pendingKeyPrefix       = "wallet_requests:pending:"
	notificationKeyPrefix  = "wallet_notification:"
	notificationsKeyPrefix = "wallet_notifications:"

	// Registries used to clear the wallet tables on reseed
	allRequestsKey      = "wallet:requests"
	allNotificationsKey = "wallet:notifications"
	indexKeysKey        = "wallet:index_keys"
)

// ErrRequestNotFound is returned when a wallet request is not found
var ErrRequestNotFound = errors.New("wallet request not found")

// ErrNotificationNotFound is returned when a notification is not found
var ErrNotificationNotFound = errors.New("wallet notification not found")

// Config holds configuration for the Redis wallet repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed wallet repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func pendingKey(requestType models.WalletRequestType, targetID string) string {
	return pendingKeyPrefix + string(requestType) + ":" + targetID
}

// SaveRequest persists a wallet request and its indexes
func (r *redisRepository) SaveRequest(ctx context.Context, input *SaveRequestInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}

	request := input.Request
	if request.ID == "" {
		return errors.New("request ID cannot be empty")
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	forKey := requestsForKeyPrefix + request.TargetID

	pipe := r.client.Pipeline()
	pipe.Set(ctx, requestKeyPrefix+request.ID, requestJSON, 0)
	pipe.ZAdd(ctx, forKey, redis.Z{
		Score:  float64(request.CreatedAt.UnixNano()),
		Member: request.ID,
	})
	pipe.SAdd(ctx, allRequestsKey, request.ID)
	pipe.SAdd(ctx, indexKeysKey, forKey)

	if request.Status == models.WalletRequestPending {
		pending := pendingKey(request.Type, request.TargetID)
		pipe.SAdd(ctx, pending, request.ID)
		pipe.SAdd(ctx, indexKeysKey, pending)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}

	return nil
}

// GetRequest retrieves a wallet request by ID
func (r *redisRepository) GetRequest(ctx context.Context, input *GetRequestInput) (*models.WalletRequest, error) {
	if input == nil || input.RequestID == "" {
		return nil, errors.New("input and request ID cannot be empty")
	}

	requestJSON, err := r.client.Get(ctx, requestKeyPrefix+input.RequestID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	var request models.WalletRequest
	if err := json.Unmarshal([]byte(requestJSON), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}

	return &request, nil
}

// UpdateRequest rewrites a wallet request record
func (r *redisRepository) UpdateRequest(ctx context.Context, input *UpdateRequestInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}

	requestJSON, err := json.Marshal(input.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := r.client.Set(ctx, requestKeyPrefix+input.Request.ID, requestJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	return nil
}

// PendingRequests retrieves the pending requests of one type directed
// at a target
func (r *redisRepository) PendingRequests(ctx context.Context, input *PendingRequestsInput) (*PendingRequestsOutput, error) {
	if input == nil || input.TargetID == "" {
		return nil, errors.New("input and target ID cannot be empty")
	}

	requestIDs, err := r.client.SMembers(ctx, pendingKey(input.Type, input.TargetID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read pending set: %w", err)
	}

	requests := make([]*models.WalletRequest, 0, len(requestIDs))
	for _, requestID := range requestIDs {
		request, err := r.GetRequest(ctx, &GetRequestInput{RequestID: requestID})
		if err != nil {
			if errors.Is(err, ErrRequestNotFound) {
				continue
			}
			return nil, err
		}
		if request.Status != models.WalletRequestPending {
			continue
		}
		requests = append(requests, request)
	}

	return &PendingRequestsOutput{Requests: requests}, nil
}

// ClaimPending atomically removes a request from its pending set
func (r *redisRepository) ClaimPending(ctx context.Context, input *ClaimPendingInput) (bool, error) {
	if input == nil || input.RequestID == "" || input.TargetID == "" {
		return false, errors.New("input, request ID and target ID cannot be empty")
	}

	removed, err := r.client.SRem(ctx, pendingKey(input.Type, input.TargetID), input.RequestID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim request: %w", err)
	}

	return removed == 1, nil
}

// RestorePending puts a claimed request back in its pending set
func (r *redisRepository) RestorePending(ctx context.Context, input *RestorePendingInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}

	request := input.Request
	if err := r.client.SAdd(ctx, pendingKey(request.Type, request.TargetID), request.ID).Err(); err != nil {
		return fmt.Errorf("failed to restore pending request: %w", err)
	}

	return nil
}

// RequestsFor retrieves all requests directed at a character
func (r *redisRepository) RequestsFor(ctx context.Context, input *RequestsForInput) (*RequestsForOutput, error) {
	if input == nil || input.TargetID == "" {
		return nil, errors.New("input and target ID cannot be empty")
	}

	requestIDs, err := r.client.ZRevRange(ctx, requestsForKeyPrefix+input.TargetID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	requests := make([]*models.WalletRequest, 0, len(requestIDs))
	for _, requestID := range requestIDs {
		request, err := r.GetRequest(ctx, &GetRequestInput{RequestID: requestID})
		if err != nil {
			if errors.Is(err, ErrRequestNotFound) {
				continue
			}
			return nil, err
		}
		requests = append(requests, request)
	}

	return &RequestsForOutput{Requests: requests}, nil
}

// SaveNotification persists a transfer receipt
func (r *redisRepository) SaveNotification(ctx context.Context, input *SaveNotificationInput) error {
	if input == nil || input.Notification == nil {
		return errors.New("input and notification cannot be nil")
	}

	notification := input.Notification
	if notification.ID == "" {
		return errors.New("notification ID cannot be empty")
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	listKey := notificationsKeyPrefix + notification.RecipientID

	pipe := r.client.Pipeline()
	pipe.Set(ctx, notificationKeyPrefix+notification.ID, notificationJSON, 0)
	pipe.ZAdd(ctx, listKey, redis.Z{
		Score:  float64(notification.CreatedAt.UnixNano()),
		Member: notification.ID,
	})
	pipe.SAdd(ctx, allNotificationsKey, notification.ID)
	pipe.SAdd(ctx, indexKeysKey, listKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return nil
}

// GetNotification retrieves a notification by ID
func (r *redisRepository) GetNotification(ctx context.Context, input *GetNotificationInput) (*models.WalletNotification, error) {
	if input == nil || input.NotificationID == "" {
		return nil, errors.New("input and notification ID cannot be empty")
	}

	notificationJSON, err := r.client.Get(ctx, notificationKeyPrefix+input.NotificationID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	var notification models.WalletNotification
	if err := json.Unmarshal([]byte(notificationJSON), &notification); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	return &notification, nil
}

// UpdateNotification rewrites a notification record
func (r *redisRepository) UpdateNotification(ctx context.Context, input *UpdateNotificationInput) error {
	if input == nil || input.Notification == nil {
		return errors.New("input and notification cannot be nil")
	}

	notificationJSON, err := json.Marshal(input.Notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := r.client.Set(ctx, notificationKeyPrefix+input.Notification.ID, notificationJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	return nil
}

// NotificationsFor retrieves a character's notifications, newest first
func (r *redisRepository) NotificationsFor(ctx context.Context, input *NotificationsForInput) (*NotificationsForOutput, error) {
	if input == nil || input.RecipientID == "" {
		return nil, errors.New("input and recipient ID cannot be empty")
	}

	notificationIDs, err := r.client.ZRevRange(ctx, notificationsKeyPrefix+input.RecipientID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*models.WalletNotification, 0, len(notificationIDs))
	for _, notificationID := range notificationIDs {
		notification, err := r.GetNotification(ctx, &GetNotificationInput{NotificationID: notificationID})
		if err != nil {
			if errors.Is(err, ErrNotificationNotFound) {
				continue
			}
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return &NotificationsForOutput{Notifications: notifications}, nil
}

// ClearAll deletes every request and notification, used on reseed
func (r *redisRepository) ClearAll(ctx context.Context) error {
	pipe := r.client.Pipeline()
	requestsCmd := pipe.SMembers(ctx, allRequestsKey)
	notificationsCmd := pipe.SMembers(ctx, allNotificationsKey)
	indexesCmd := pipe.SMembers(ctx, indexKeysKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to read wallet registries: %w", err)
	}

	pipe = r.client.Pipeline()
	for _, requestID := range requestsCmd.Val() {
		pipe.Del(ctx, requestKeyPrefix+requestID)
	}
	for _, notificationID := range notificationsCmd.Val() {
		pipe.Del(ctx, notificationKeyPrefix+notificationID)
	}
	for _, key := range indexesCmd.Val() {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, allRequestsKey, allNotificationsKey, indexKeysKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear wallet tables: %w", err)
	}

	return nil
}
