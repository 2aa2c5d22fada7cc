package suspicion

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/promnight/promnight/internal/common/clock/mocks"
	uuidMocks "github.com/promnight/promnight/internal/common/uuid/mocks"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
	suspicionRepo "github.com/promnight/promnight/internal/repositories/suspicion"
)

type SuspicionServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockClock  *clockMocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	mr         *miniredis.Miniredis
	client     *redis.Client
	roster     rosterRepo.Repository
	suspicions suspicionRepo.Repository
	service    Service
	ctx        context.Context

	// now is what the mocked clock returns; tests advance it
	now time.Time
}

func (s *SuspicionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 30, 20, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	sequence := 0
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		sequence++
		return fmt.Sprintf("uuid-%d", sequence)
	}).AnyTimes()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	roster, err := rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.roster = roster

	suspicions, err := suspicionRepo.NewRedis(&suspicionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.suspicions = suspicions

	service, err := New(&Config{
		SuspicionRepo: s.suspicions,
		RosterRepo:    s.roster,
		Hub:           hub.New(),
		Clock:         s.mockClock,
		UUID:          s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = service

	s.seedCharacter("alex", true)
	s.seedCharacter("casey", true)
	s.seedCharacter("taylor", true)
	s.seedCharacter("victim", false)
}

func (s *SuspicionServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestSuspicionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuspicionServiceTestSuite))
}

func (s *SuspicionServiceTestSuite) seedCharacter(id string, alive bool) {
	s.Require().NoError(s.roster.SaveCharacter(s.ctx, &rosterRepo.SaveCharacterInput{
		Character: &models.Character{
			ID:        id,
			Name:      "Test " + id,
			Alive:     alive,
			Balance:   500,
			LoginCode: id + "-CODE",
			Seq:       1,
		},
	}))
}

func (s *SuspicionServiceTestSuite) TestAccuseIncrementsScore() {
	result, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "casey",
	})
	s.Require().NoError(err)
	s.Equal(1, result.Score)

	// A second accuser pushes the score up
	result, err = s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "taylor",
		AccusedID: "casey",
	})
	s.Require().NoError(err)
	s.Equal(2, result.Score)

	character, err := s.roster.GetCharacter(s.ctx, &rosterRepo.GetCharacterInput{
		CharacterID: "casey",
	})
	s.Require().NoError(err)
	s.Equal(2, character.SuspicionScore)
}

func (s *SuspicionServiceTestSuite) TestAccuseRequiresAuthentication() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{AccuserID: "", AccusedID: "casey"})
	s.ErrorIs(err, ErrNotAuthenticated)

	_, err = s.service.Accuse(s.ctx, &AccuseInput{AccuserID: "ghost", AccusedID: "casey"})
	s.ErrorIs(err, ErrNotAuthenticated)
}

func (s *SuspicionServiceTestSuite) TestAccuseLockedBeforeFirstDeath() {
	revived, err := s.roster.SetAlive(s.ctx, &rosterRepo.SetAliveInput{
		CharacterID: "victim",
		Alive:       true,
	})
	s.Require().NoError(err)
	s.Require().True(revived.Changed)

	_, err = s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "casey",
	})
	s.ErrorIs(err, ErrPhaseLocked)
}

func (s *SuspicionServiceTestSuite) TestAccuseSelf() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "alex",
	})
	s.ErrorIs(err, ErrSelfAccusation)
}

func (s *SuspicionServiceTestSuite) TestAccuseUnknownTarget() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "ghost",
	})
	s.ErrorIs(err, ErrCharacterNotFound)
}

func (s *SuspicionServiceTestSuite) TestAccuseDeadTarget() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "victim",
	})
	s.ErrorIs(err, ErrAccusedNotAlive)
}

func (s *SuspicionServiceTestSuite) TestAccuseCooldownBoundary() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "casey",
	})
	s.Require().NoError(err)

	// One second short of the cooldown is still blocked
	s.now = s.now.Add(DefaultCooldown - time.Second)
	_, err = s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "taylor",
	})
	s.ErrorIs(err, ErrCooldownActive)

	// Exactly the cooldown is allowed
	s.now = s.now.Add(time.Second)
	result, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "taylor",
	})
	s.Require().NoError(err)
	s.Equal(1, result.Score)
}

func (s *SuspicionServiceTestSuite) TestCooldownIsPerAccuser() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "casey",
	})
	s.Require().NoError(err)

	// A different accuser is not throttled by alex's clock
	result, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "taylor",
		AccusedID: "casey",
	})
	s.Require().NoError(err)
	s.Equal(2, result.Score)
}

func (s *SuspicionServiceTestSuite) TestRejectedAccusationWritesNothing() {
	_, err := s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "casey",
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.Accuse(s.ctx, &AccuseInput{
		AccuserID: "alex",
		AccusedID: "taylor",
	})
	s.Require().ErrorIs(err, ErrCooldownActive)

	// The rejected accusation left no trace
	count, err := s.suspicions.CountFor(s.ctx, &suspicionRepo.CountForInput{AccusedID: "taylor"})
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}
