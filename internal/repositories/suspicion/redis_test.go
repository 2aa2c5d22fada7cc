package suspicion

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/promnight/promnight/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 5, 30, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) accusation(id, accuser, accused string, at time.Time) *models.Accusation {
	return &models.Accusation{
		ID:        id,
		AccuserID: accuser,
		AccusedID: accused,
		Points:    1,
		CreatedAt: at,
	}
}

func (s *RedisRepositoryTestSuite) append(accusation *models.Accusation) {
	s.Require().NoError(s.repo.AppendAccusation(context.Background(), &AppendAccusationInput{
		Accusation: accusation,
	}))
}

func (s *RedisRepositoryTestSuite) TestAppendAndCount() {
	s.append(s.accusation("acc-1", "alex", "casey", s.testNow))
	s.append(s.accusation("acc-2", "jamie", "casey", s.testNow.Add(time.Minute)))
	s.append(s.accusation("acc-3", "alex", "jamie", s.testNow.Add(2*time.Minute)))

	count, err := s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "casey"})
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	count, err = s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "jamie"})
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	count, err = s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "alex"})
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

func (s *RedisRepositoryTestSuite) TestLastAccusedAtTracksLatest() {
	// Never accused yet: zero time
	lastAccused, err := s.repo.LastAccusedAt(context.Background(), &LastAccusedAtInput{
		AccuserID: "alex",
	})
	s.Require().NoError(err)
	s.True(lastAccused.IsZero())

	s.append(s.accusation("acc-1", "alex", "casey", s.testNow))

	lastAccused, err = s.repo.LastAccusedAt(context.Background(), &LastAccusedAtInput{
		AccuserID: "alex",
	})
	s.Require().NoError(err)
	s.Equal(s.testNow.UnixNano(), lastAccused.UnixNano())

	// A later accusation advances the clock
	s.append(s.accusation("acc-2", "alex", "jamie", s.testNow.Add(time.Hour)))

	lastAccused, err = s.repo.LastAccusedAt(context.Background(), &LastAccusedAtInput{
		AccuserID: "alex",
	})
	s.Require().NoError(err)
	s.Equal(s.testNow.Add(time.Hour).UnixNano(), lastAccused.UnixNano())
}

func (s *RedisRepositoryTestSuite) TestClearForRemovesOnlyTarget() {
	s.append(s.accusation("acc-1", "alex", "casey", s.testNow))
	s.append(s.accusation("acc-2", "jamie", "casey", s.testNow))
	s.append(s.accusation("acc-3", "casey", "jamie", s.testNow))

	s.Require().NoError(s.repo.ClearFor(context.Background(), &ClearForInput{
		AccusedID: "casey",
	}))

	count, err := s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "casey"})
	s.Require().NoError(err)
	s.Equal(int64(0), count)

	// Accusations against other characters survive
	count, err = s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "jamie"})
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	// Cooldown clocks are not touched by a kill reset
	lastAccused, err := s.repo.LastAccusedAt(context.Background(), &LastAccusedAtInput{
		AccuserID: "alex",
	})
	s.Require().NoError(err)
	s.False(lastAccused.IsZero())
}

func (s *RedisRepositoryTestSuite) TestClearAll() {
	s.append(s.accusation("acc-1", "alex", "casey", s.testNow))
	s.append(s.accusation("acc-2", "jamie", "casey", s.testNow))

	s.Require().NoError(s.repo.ClearAll(context.Background()))

	count, err := s.repo.CountFor(context.Background(), &CountForInput{AccusedID: "casey"})
	s.Require().NoError(err)
	s.Equal(int64(0), count)

	// Cooldown clocks reset with the session
	lastAccused, err := s.repo.LastAccusedAt(context.Background(), &LastAccusedAtInput{
		AccuserID: "alex",
	})
	s.Require().NoError(err)
	s.True(lastAccused.IsZero())
}
