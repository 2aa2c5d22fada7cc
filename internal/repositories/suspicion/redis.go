package suspicion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	accusationKeyPrefix = "accusation:"
	againstKeyPrefix    = "accusations:against:"
	cooldownKeyPrefix   = "accuse_cooldown:"

	// Registries used to clear the log on reseed
	allAccusationsKey = "accusations"
	indexKeysKey      = "accusations:index_keys"
	cooldownKeysKey   = "accusations:cooldown_keys"
)

// Config holds configuration for the Redis suspicion repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed suspicion repository
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

// AppendAccusation records an accusation and stamps the cooldown clock
func (r *redisRepository) AppendAccusation(ctx context.Context, input *AppendAccusationInput) error {
	if input == nil || input.Accusation == nil {
		return errors.New("input and accusation cannot be nil")
	}

	accusation := input.Accusation
	if accusation.ID == "" {
		return errors.New("accusation ID cannot be empty")
	}

	accusationJSON, err := json.Marshal(accusation)
	if err != nil {
		return fmt.Errorf("failed to marshal accusation: %w", err)
	}

	againstKey := againstKeyPrefix + accusation.AccusedID
	cooldownKey := cooldownKeyPrefix + accusation.AccuserID

	pipe := r.client.Pipeline()
	pipe.Set(ctx, accusationKeyPrefix+accusation.ID, accusationJSON, 0)
	pipe.ZAdd(ctx, againstKey, redis.Z{
		Score:  float64(accusation.CreatedAt.UnixNano()),
		Member: accusation.ID,
	})
	pipe.Set(ctx, cooldownKey, accusation.CreatedAt.UnixNano(), 0)
	pipe.SAdd(ctx, allAccusationsKey, accusation.ID)
	pipe.SAdd(ctx, indexKeysKey, againstKey)
	pipe.SAdd(ctx, cooldownKeysKey, cooldownKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append accusation: %w", err)
	}

	return nil
}

// CountFor counts the accusations against a character
func (r *redisRepository) CountFor(ctx context.Context, input *CountForInput) (int64, error) {
	if input == nil || input.AccusedID == "" {
		return 0, errors.New("input and accused ID cannot be empty")
	}

	count, err := r.client.ZCard(ctx, againstKeyPrefix+input.AccusedID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count accusations: %w", err)
	}

	return count, nil
}

// LastAccusedAt returns when the accuser last accused
func (r *redisRepository) LastAccusedAt(ctx context.Context, input *LastAccusedAtInput) (time.Time, error) {
	if input == nil || input.AccuserID == "" {
		return time.Time{}, errors.New("input and accuser ID cannot be empty")
	}

	value, err := r.client.Get(ctx, cooldownKeyPrefix+input.AccuserID).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read cooldown clock: %w", err)
	}

	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse cooldown clock: %w", err)
	}

	return time.Unix(0, nanos), nil
}

// ClearFor deletes all accusations against a character
func (r *redisRepository) ClearFor(ctx context.Context, input *ClearForInput) error {
	if input == nil || input.AccusedID == "" {
		return errors.New("input and accused ID cannot be empty")
	}

	againstKey := againstKeyPrefix + input.AccusedID
	accusationIDs, err := r.client.ZRange(ctx, againstKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list accusations: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, accusationID := range accusationIDs {
		pipe.Del(ctx, accusationKeyPrefix+accusationID)
		pipe.SRem(ctx, allAccusationsKey, accusationID)
	}
	pipe.Del(ctx, againstKey)
	pipe.SRem(ctx, indexKeysKey, againstKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear accusations: %w", err)
	}

	return nil
}

// ClearAll deletes every accusation and cooldown, used on reseed
func (r *redisRepository) ClearAll(ctx context.Context) error {
	pipe := r.client.Pipeline()
	accusationsCmd := pipe.SMembers(ctx, allAccusationsKey)
	indexesCmd := pipe.SMembers(ctx, indexKeysKey)
	cooldownsCmd := pipe.SMembers(ctx, cooldownKeysKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to read accusation registries: %w", err)
	}

	pipe = r.client.Pipeline()
	for _, accusationID := range accusationsCmd.Val() {
		pipe.Del(ctx, accusationKeyPrefix+accusationID)
	}
	for _, key := range indexesCmd.Val() {
		pipe.Del(ctx, key)
	}
	for _, key := range cooldownsCmd.Val() {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, allAccusationsKey, indexKeysKey, cooldownKeysKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear accusations: %w", err)
	}

	return nil
}
