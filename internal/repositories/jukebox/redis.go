package jukebox

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
	entryKeyPrefix     = "queue_entry:"
	fileClaimKeyPrefix = "jukebox:active_file:"

	// queuedKey is the set of queued entry IDs
	queuedKey = "jukebox:queued"

	// nowPlayingKey holds the single playing entry ID
	nowPlayingKey = "jukebox:now_playing"

	// Registries used to clear the queue on reseed
	allEntriesKey    = "jukebox:entries"
	fileClaimKeysKey = "jukebox:active_files"
)

// ErrEntryNotFound is returned when a queue entry is not found
var ErrEntryNotFound = errors.New("queue entry not found")

// compareAndDelScript deletes a key only while it still holds the
// expected value, so stale finish/skip signals cannot release a slot
// they no longer own.
var compareAndDelScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config holds configuration for the Redis jukebox repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed jukebox repository
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

// SaveEntry persists a queue entry
func (r *redisRepository) SaveEntry(ctx context.Context, input *SaveEntryInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	entry := input.Entry
	if entry.ID == "" {
		return errors.New("entry ID cannot be empty")
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, entryKeyPrefix+entry.ID, entryJSON, 0)
	pipe.SAdd(ctx, allEntriesKey, entry.ID)
	if entry.Status == models.QueueStatusQueued {
		pipe.SAdd(ctx, queuedKey, entry.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

// GetEntry retrieves a queue entry by ID
func (r *redisRepository) GetEntry(ctx context.Context, input *GetEntryInput) (*models.QueueEntry, error) {
	if input == nil || input.EntryID == "" {
		return nil, errors.New("input and entry ID cannot be empty")
	}

	entryJSON, err := r.client.Get(ctx, entryKeyPrefix+input.EntryID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	var entry models.QueueEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &entry, nil
}

// UpdateEntry rewrites a queue entry record
func (r *redisRepository) UpdateEntry(ctx context.Context, input *UpdateEntryInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	entryJSON, err := json.Marshal(input.Entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := r.client.Set(ctx, entryKeyPrefix+input.Entry.ID, entryJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	return nil
}

// QueuedEntries retrieves all entries currently queued
func (r *redisRepository) QueuedEntries(ctx context.Context) (*QueuedEntriesOutput, error) {
	entryIDs, err := r.client.SMembers(ctx, queuedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read queued set: %w", err)
	}

	entries := make([]*models.QueueEntry, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		entry, err := r.GetEntry(ctx, &GetEntryInput{EntryID: entryID})
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				continue
			}
			return nil, err
		}
		if entry.Status != models.QueueStatusQueued {
			continue
		}
		entries = append(entries, entry)
	}

	return &QueuedEntriesOutput{Entries: entries}, nil
}

// NowPlaying retrieves the playing entry, nil when idle
func (r *redisRepository) NowPlaying(ctx context.Context) (*models.QueueEntry, error) {
	entryID, err := r.client.Get(ctx, nowPlayingKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read now-playing slot: %w", err)
	}

	entry, err := r.GetEntry(ctx, &GetEntryInput{EntryID: entryID})
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return entry, nil
}

// PromoteToPlaying claims the now-playing slot for an entry
func (r *redisRepository) PromoteToPlaying(ctx context.Context, input *PromoteToPlayingInput) (bool, error) {
	if input == nil || input.EntryID == "" {
		return false, errors.New("input and entry ID cannot be empty")
	}

	acquired, err := r.client.SetNX(ctx, nowPlayingKey, input.EntryID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim now-playing slot: %w", err)
	}
	if !acquired {
		return false, nil
	}

	if err := r.client.SRem(ctx, queuedKey, input.EntryID).Err(); err != nil {
		return false, fmt.Errorf("failed to dequeue entry: %w", err)
	}

	return true, nil
}

// ForceNowPlaying unconditionally installs an entry in the slot
func (r *redisRepository) ForceNowPlaying(ctx context.Context, input *ForceNowPlayingInput) (string, error) {
	if input == nil || input.EntryID == "" {
		return "", errors.New("input and entry ID cannot be empty")
	}

	previousID, err := r.client.GetSet(ctx, nowPlayingKey, input.EntryID).Result()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to force now-playing slot: %w", err)
	}

	if err := r.client.SRem(ctx, queuedKey, input.EntryID).Err(); err != nil {
		return "", fmt.Errorf("failed to dequeue entry: %w", err)
	}

	if previousID == input.EntryID {
		return "", nil
	}

	return previousID, nil
}

// ClearNowPlaying releases the slot iff the given entry holds it
func (r *redisRepository) ClearNowPlaying(ctx context.Context, input *ClearNowPlayingInput) (bool, error) {
	if input == nil || input.EntryID == "" {
		return false, errors.New("input and entry ID cannot be empty")
	}

	released, err := compareAndDelScript.Run(ctx, r.client, []string{nowPlayingKey}, input.EntryID).Int()
	if err != nil {
		return false, fmt.Errorf("failed to release now-playing slot: %w", err)
	}

	return released == 1, nil
}

// ClaimFile reserves a filename for an entry
func (r *redisRepository) ClaimFile(ctx context.Context, input *ClaimFileInput) (bool, error) {
	if input == nil || input.FileKey == "" || input.EntryID == "" {
		return false, errors.New("input, file key and entry ID cannot be empty")
	}

	key := fileClaimKeyPrefix + input.FileKey
	claimed, err := r.client.SetNX(ctx, key, input.EntryID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim file: %w", err)
	}

	if claimed {
		if err := r.client.SAdd(ctx, fileClaimKeysKey, key).Err(); err != nil {
			return false, fmt.Errorf("failed to register file claim: %w", err)
		}
	}

	return claimed, nil
}

// GetFileClaim returns the entry ID holding a filename claim
func (r *redisRepository) GetFileClaim(ctx context.Context, input *GetFileClaimInput) (string, error) {
	if input == nil || input.FileKey == "" {
		return "", errors.New("input and file key cannot be empty")
	}

	entryID, err := r.client.Get(ctx, fileClaimKeyPrefix+input.FileKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read file claim: %w", err)
	}

	return entryID, nil
}

// ReleaseFile drops a filename claim iff the given entry holds it
func (r *redisRepository) ReleaseFile(ctx context.Context, input *ReleaseFileInput) error {
	if input == nil || input.FileKey == "" || input.EntryID == "" {
		return errors.New("input, file key and entry ID cannot be empty")
	}

	key := fileClaimKeyPrefix + input.FileKey
	if _, err := compareAndDelScript.Run(ctx, r.client, []string{key}, input.EntryID).Int(); err != nil {
		return fmt.Errorf("failed to release file claim: %w", err)
	}

	return nil
}

// ClearAll deletes the whole queue, used on session reseed
func (r *redisRepository) ClearAll(ctx context.Context) error {
	pipe := r.client.Pipeline()
	entriesCmd := pipe.SMembers(ctx, allEntriesKey)
	claimsCmd := pipe.SMembers(ctx, fileClaimKeysKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to read jukebox registries: %w", err)
	}

	pipe = r.client.Pipeline()
	for _, entryID := range entriesCmd.Val() {
		pipe.Del(ctx, entryKeyPrefix+entryID)
	}
	for _, key := range claimsCmd.Val() {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, queuedKey, nowPlayingKey, allEntriesKey, fileClaimKeysKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear jukebox: %w", err)
	}

	return nil
}
