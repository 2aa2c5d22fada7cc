package photostrip

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
	stripKeyPrefix = "photo_strip:"

	// stripsKey is the sorted set of strip IDs scored by creation time
	stripsKey = "photo_strips"
)

// Config holds configuration for the Redis photo strip repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed photo strip repository
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

// SaveStrip persists a photo strip record
func (r *redisRepository) SaveStrip(ctx context.Context, input *SaveStripInput) error {
	if input == nil || input.Strip == nil {
		return errors.New("input and strip cannot be nil")
	}

	strip := input.Strip
	if strip.ID == "" {
		return errors.New("strip ID cannot be empty")
	}

	stripJSON, err := json.Marshal(strip)
	if err != nil {
		return fmt.Errorf("failed to marshal strip: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, stripKeyPrefix+strip.ID, stripJSON, 0)
	pipe.ZAdd(ctx, stripsKey, redis.Z{
		Score:  float64(strip.CreatedAt.UnixNano()),
		Member: strip.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save strip: %w", err)
	}

	return nil
}

// ListStrips retrieves all strips, newest first
func (r *redisRepository) ListStrips(ctx context.Context) (*ListStripsOutput, error) {
	stripIDs, err := r.client.ZRevRange(ctx, stripsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list strips: %w", err)
	}

	strips := make([]*models.PhotoStrip, 0, len(stripIDs))
	for _, stripID := range stripIDs {
		stripJSON, err := r.client.Get(ctx, stripKeyPrefix+stripID).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get strip %s: %w", stripID, err)
		}

		var strip models.PhotoStrip
		if err := json.Unmarshal([]byte(stripJSON), &strip); err != nil {
			return nil, fmt.Errorf("failed to unmarshal strip %s: %w", stripID, err)
		}
		strips = append(strips, &strip)
	}

	return &ListStripsOutput{Strips: strips}, nil
}
