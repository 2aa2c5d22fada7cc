package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/promnight/promnight/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	characterKeyPrefix = "character:"
	loginCodeKeyPrefix = "login_code:"
	balanceKeyPrefix   = "balance:"
	suspicionKeyPrefix = "suspicion:"

	// rosterKey is the sorted set of character IDs scored by seed order
	rosterKey = "characters"

	// deadKey is the set of dead character IDs. Phase two is derived
	// from its cardinality and never stored separately.
	deadKey = "characters:dead"
)

// ErrCharacterNotFound is returned when a character is not found
var ErrCharacterNotFound = errors.New("character not found")

// ErrInsufficientBalance is returned when a transfer would overdraw the
// sender's wallet
var ErrInsufficientBalance = errors.New("insufficient balance")

// transferScript performs the balance check and both balance moves as a
// single atomic step so concurrent transfers cannot pass the check on a
// stale read.
var transferScript = redis.NewScript(`
local balance = tonumber(redis.call("GET", KEYS[1]) or "0")
local amount = tonumber(ARGV[1])
if balance < amount then
	return 0
end
redis.call("DECRBY", KEYS[1], amount)
redis.call("INCRBY", KEYS[2], amount)
return 1
`)

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
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

// SaveCharacter persists a character record and its indexes
func (r *redisRepository) SaveCharacter(ctx context.Context, input *SaveCharacterInput) error {
	if input == nil || input.Character == nil {
		return errors.New("input and character cannot be nil")
	}

	character := input.Character
	if character.ID == "" {
		return errors.New("character ID cannot be empty")
	}

	characterJSON, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, characterKeyPrefix+character.ID, characterJSON, 0)
	pipe.ZAdd(ctx, rosterKey, redis.Z{
		Score:  float64(character.Seq),
		Member: character.ID,
	})
	pipe.Set(ctx, loginCodeKeyPrefix+strings.ToLower(character.LoginCode), character.ID, 0)
	pipe.Set(ctx, balanceKeyPrefix+character.ID, character.Balance, 0)
	pipe.Set(ctx, suspicionKeyPrefix+character.ID, character.SuspicionScore, 0)

	if character.Alive {
		pipe.SRem(ctx, deadKey, character.ID)
	} else {
		pipe.SAdd(ctx, deadKey, character.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}

	return nil
}

// GetCharacter retrieves a character by ID
func (r *redisRepository) GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	characterCmd := pipe.Get(ctx, characterKeyPrefix+input.CharacterID)
	deadCmd := pipe.SIsMember(ctx, deadKey, input.CharacterID)
	balanceCmd := pipe.Get(ctx, balanceKeyPrefix+input.CharacterID)
	suspicionCmd := pipe.Get(ctx, suspicionKeyPrefix+input.CharacterID)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	characterJSON, err := characterCmd.Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var character models.Character
	if err := json.Unmarshal([]byte(characterJSON), &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	// The alive flag, balance and suspicion counter are authoritative
	// in their own keys, not in the stored JSON.
	character.Alive = !deadCmd.Val()
	if balance, err := balanceCmd.Int(); err == nil {
		character.Balance = balance
	}
	if score, err := suspicionCmd.Int(); err == nil {
		character.SuspicionScore = score
	}

	return &character, nil
}

// GetByLoginCode retrieves a character by its login code
func (r *redisRepository) GetByLoginCode(ctx context.Context, input *GetByLoginCodeInput) (*models.Character, error) {
	if input == nil || input.LoginCode == "" {
		return nil, errors.New("input and login code cannot be empty")
	}

	characterID, err := r.client.Get(ctx, loginCodeKeyPrefix+strings.ToLower(input.LoginCode)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to resolve login code: %w", err)
	}

	return r.GetCharacter(ctx, &GetCharacterInput{CharacterID: characterID})
}

// ListCharacters retrieves the full roster in seed order
func (r *redisRepository) ListCharacters(ctx context.Context) (*ListCharactersOutput, error) {
	characterIDs, err := r.client.ZRange(ctx, rosterKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	characters := make([]*models.Character, 0, len(characterIDs))
	for _, characterID := range characterIDs {
		character, err := r.GetCharacter(ctx, &GetCharacterInput{CharacterID: characterID})
		if err != nil {
			if errors.Is(err, ErrCharacterNotFound) {
				continue
			}
			return nil, err
		}
		characters = append(characters, character)
	}

	return &ListCharactersOutput{Characters: characters}, nil
}

// SetAlive flips a character's alive flag. The set add/remove and the
// dead count are executed in one transaction so the caller can detect
// the phase edge without racing a concurrent kill.
func (r *redisRepository) SetAlive(ctx context.Context, input *SetAliveInput) (*SetAliveOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, characterKeyPrefix+input.CharacterID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check character: %w", err)
	}
	if exists == 0 {
		return nil, ErrCharacterNotFound
	}

	pipe := r.client.TxPipeline()
	var changedCmd *redis.IntCmd
	if input.Alive {
		changedCmd = pipe.SRem(ctx, deadKey, input.CharacterID)
	} else {
		changedCmd = pipe.SAdd(ctx, deadKey, input.CharacterID)
	}
	deadCountCmd := pipe.SCard(ctx, deadKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to set alive flag: %w", err)
	}

	return &SetAliveOutput{
		Changed:   changedCmd.Val() == 1,
		DeadCount: deadCountCmd.Val(),
	}, nil
}

// DeadCount returns the number of dead characters
func (r *redisRepository) DeadCount(ctx context.Context) (int64, error) {
	count, err := r.client.SCard(ctx, deadKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count dead characters: %w", err)
	}
	return count, nil
}

// Transfer atomically moves balance from one character to another
func (r *redisRepository) Transfer(ctx context.Context, input *TransferInput) error {
	if input == nil || input.FromID == "" || input.ToID == "" {
		return errors.New("input and character IDs cannot be empty")
	}

	if input.Amount <= 0 {
		return errors.New("amount must be positive")
	}

	fromKey := balanceKeyPrefix + input.FromID
	toKey := balanceKeyPrefix + input.ToID

	ok, err := transferScript.Run(ctx, r.client, []string{fromKey, toKey}, input.Amount).Int()
	if err != nil {
		return fmt.Errorf("failed to run transfer: %w", err)
	}
	if ok == 0 {
		return ErrInsufficientBalance
	}

	return nil
}

// AddSuspicion adjusts a character's suspicion counter
func (r *redisRepository) AddSuspicion(ctx context.Context, input *AddSuspicionInput) (*AddSuspicionOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	score, err := r.client.IncrBy(ctx, suspicionKeyPrefix+input.CharacterID, int64(input.Delta)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to adjust suspicion: %w", err)
	}

	return &AddSuspicionOutput{Score: int(score)}, nil
}

// ResetSuspicion zeroes a character's suspicion counter
func (r *redisRepository) ResetSuspicion(ctx context.Context, input *ResetSuspicionInput) error {
	if input == nil || input.CharacterID == "" {
		return errors.New("input and character ID cannot be empty")
	}

	if err := r.client.Set(ctx, suspicionKeyPrefix+input.CharacterID, 0, 0).Err(); err != nil {
		return fmt.Errorf("failed to reset suspicion: %w", err)
	}

	return nil
}

// Reseed atomically replaces the whole roster
func (r *redisRepository) Reseed(ctx context.Context, input *ReseedInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	existing, err := r.ListCharacters(ctx)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, character := range existing.Characters {
		pipe.Del(ctx,
			characterKeyPrefix+character.ID,
			loginCodeKeyPrefix+strings.ToLower(character.LoginCode),
			balanceKeyPrefix+character.ID,
			suspicionKeyPrefix+character.ID,
		)
	}
	pipe.Del(ctx, rosterKey, deadKey)

	for _, character := range input.Characters {
		characterJSON, err := json.Marshal(character)
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}
		pipe.Set(ctx, characterKeyPrefix+character.ID, characterJSON, 0)
		pipe.ZAdd(ctx, rosterKey, redis.Z{
			Score:  float64(character.Seq),
			Member: character.ID,
		})
		pipe.Set(ctx, loginCodeKeyPrefix+strings.ToLower(character.LoginCode), character.ID, 0)
		pipe.Set(ctx, balanceKeyPrefix+character.ID, character.Balance, 0)
		pipe.Set(ctx, suspicionKeyPrefix+character.ID, character.SuspicionScore, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reseed roster: %w", err)
	}

	return nil
}
