package board

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
	messageKeyPrefix  = "message:"
	dmThreadKeyPrefix = "dm_thread:"
	dmUnreadKeyPrefix = "dm_unread:"

	// publicKey and publicPinnedKey are the feed indexes, scored by
	// post time
	publicKey       = "board:public"
	publicPinnedKey = "board:public:pinned"

	// Registries used to clear the board without scanning the keyspace
	allMessagesKey = "board:messages"
	threadKeysKey  = "board:dm_threads"
	unreadKeysKey  = "board:dm_unread_keys"
)

// ErrMessageNotFound is returned when a message is not found
var ErrMessageNotFound = errors.New("message not found")

// Config holds configuration for the Redis board repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed board repository
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

// threadKey builds the canonical key for a DM thread. Both directions
// of a conversation share one thread.
func threadKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return dmThreadKeyPrefix + a + ":" + b
}

func unreadKey(userID, otherID string) string {
	return dmUnreadKeyPrefix + userID + ":" + otherID
}

// SaveMessage persists a message and its indexes
func (r *redisRepository) SaveMessage(ctx context.Context, input *SaveMessageInput) error {
	if input == nil || input.Message == nil {
		return errors.New("input and message cannot be nil")
	}

	message := input.Message
	if message.ID == "" {
		return errors.New("message ID cannot be empty")
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	score := float64(message.CreatedAt.UnixNano())

	pipe := r.client.Pipeline()
	pipe.Set(ctx, messageKeyPrefix+message.ID, messageJSON, 0)
	pipe.SAdd(ctx, allMessagesKey, message.ID)

	switch message.Kind {
	case models.MessageKindPublic:
		if message.Pinned {
			pipe.ZAdd(ctx, publicPinnedKey, redis.Z{Score: score, Member: message.ID})
		} else {
			pipe.ZAdd(ctx, publicKey, redis.Z{Score: score, Member: message.ID})
		}
	case models.MessageKindDM:
		thread := threadKey(message.SenderID, message.RecipientID)
		unread := unreadKey(message.RecipientID, message.SenderID)
		pipe.ZAdd(ctx, thread, redis.Z{Score: score, Member: message.ID})
		pipe.SAdd(ctx, threadKeysKey, thread)
		if !message.Read {
			pipe.SAdd(ctx, unread, message.ID)
			pipe.SAdd(ctx, unreadKeysKey, unread)
		}
	default:
		return fmt.Errorf("unknown message kind %q", message.Kind)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

// GetMessage retrieves a message by ID
func (r *redisRepository) GetMessage(ctx context.Context, input *GetMessageInput) (*models.Message, error) {
	if input == nil || input.MessageID == "" {
		return nil, errors.New("input and message ID cannot be empty")
	}

	messageJSON, err := r.client.Get(ctx, messageKeyPrefix+input.MessageID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	var message models.Message
	if err := json.Unmarshal([]byte(messageJSON), &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &message, nil
}

// getMessages fetches a batch of messages in the given ID order
func (r *redisRepository) getMessages(ctx context.Context, messageIDs []string) ([]*models.Message, error) {
	if len(messageIDs) == 0 {
		return []*models.Message{}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(messageIDs))
	for i, messageID := range messageIDs {
		commands[i] = pipe.Get(ctx, messageKeyPrefix+messageID)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	messages := make([]*models.Message, 0, len(messageIDs))
	for i, cmd := range commands {
		messageJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Deleted between the index read and the fetch
				continue
			}
			return nil, fmt.Errorf("failed to get message %s: %w", messageIDs[i], err)
		}

		var message models.Message
		if err := json.Unmarshal([]byte(messageJSON), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message %s: %w", messageIDs[i], err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

// ListPublic retrieves the public feed: pinned entries newest first,
// then unpinned by recency.
func (r *redisRepository) ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error) {
	if input == nil {
		input = &ListPublicInput{}
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	pipe := r.client.Pipeline()
	pinnedCmd := pipe.ZRevRange(ctx, publicPinnedKey, 0, stop)
	unpinnedCmd := pipe.ZRevRange(ctx, publicKey, 0, stop)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to list public feed: %w", err)
	}

	messageIDs := pinnedCmd.Val()
	messageIDs = append(messageIDs, unpinnedCmd.Val()...)
	if input.Limit > 0 && len(messageIDs) > input.Limit {
		messageIDs = messageIDs[:input.Limit]
	}

	messages, err := r.getMessages(ctx, messageIDs)
	if err != nil {
		return nil, err
	}

	return &ListPublicOutput{Messages: messages}, nil
}

// ClearPublic deletes all public messages, pinned included
func (r *redisRepository) ClearPublic(ctx context.Context) error {
	pipe := r.client.Pipeline()
	pinnedCmd := pipe.ZRange(ctx, publicPinnedKey, 0, -1)
	unpinnedCmd := pipe.ZRange(ctx, publicKey, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to list public feed: %w", err)
	}

	messageIDs := append(pinnedCmd.Val(), unpinnedCmd.Val()...)

	pipe = r.client.Pipeline()
	for _, messageID := range messageIDs {
		pipe.Del(ctx, messageKeyPrefix+messageID)
		pipe.SRem(ctx, allMessagesKey, messageID)
	}
	pipe.Del(ctx, publicKey, publicPinnedKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear public feed: %w", err)
	}

	return nil
}

// ThreadMessages retrieves a DM thread, most recent first
func (r *redisRepository) ThreadMessages(ctx context.Context, input *ThreadMessagesInput) (*ThreadMessagesOutput, error) {
	if input == nil || input.UserID == "" || input.OtherID == "" {
		return nil, errors.New("input and character IDs cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	messageIDs, err := r.client.ZRevRange(ctx, threadKey(input.UserID, input.OtherID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read thread: %w", err)
	}

	messages, err := r.getMessages(ctx, messageIDs)
	if err != nil {
		return nil, err
	}

	return &ThreadMessagesOutput{Messages: messages}, nil
}

// UnreadCount counts unread DMs sent by the other party to the user
func (r *redisRepository) UnreadCount(ctx context.Context, input *UnreadCountInput) (int64, error) {
	if input == nil || input.UserID == "" || input.OtherID == "" {
		return 0, errors.New("input and character IDs cannot be empty")
	}

	count, err := r.client.SCard(ctx, unreadKey(input.UserID, input.OtherID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// MarkRead flips the read flag on all unread DMs from the other party
func (r *redisRepository) MarkRead(ctx context.Context, input *MarkReadInput) error {
	if input == nil || input.UserID == "" || input.OtherID == "" {
		return errors.New("input and character IDs cannot be empty")
	}

	unread := unreadKey(input.UserID, input.OtherID)
	messageIDs, err := r.client.SMembers(ctx, unread).Result()
	if err != nil {
		return fmt.Errorf("failed to read unread set: %w", err)
	}

	messages, err := r.getMessages(ctx, messageIDs)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	for _, message := range messages {
		message.Read = true
		messageJSON, err := json.Marshal(message)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		pipe.Set(ctx, messageKeyPrefix+message.ID, messageJSON, 0)
	}
	pipe.Del(ctx, unread)
	pipe.SRem(ctx, unreadKeysKey, unread)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}

	return nil
}

// ClearAll deletes every message and index, used on session reseed
func (r *redisRepository) ClearAll(ctx context.Context) error {
	pipe := r.client.Pipeline()
	messagesCmd := pipe.SMembers(ctx, allMessagesKey)
	threadsCmd := pipe.SMembers(ctx, threadKeysKey)
	unreadCmd := pipe.SMembers(ctx, unreadKeysKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to read board registries: %w", err)
	}

	pipe = r.client.Pipeline()
	for _, messageID := range messagesCmd.Val() {
		pipe.Del(ctx, messageKeyPrefix+messageID)
	}
	for _, key := range threadsCmd.Val() {
		pipe.Del(ctx, key)
	}
	for _, key := range unreadCmd.Val() {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, publicKey, publicPinnedKey, allMessagesKey, threadKeysKey, unreadKeysKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear board: %w", err)
	}

	return nil
}
