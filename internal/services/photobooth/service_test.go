package photobooth

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/promnight/promnight/internal/blobstore"
	clockMocks "github.com/promnight/promnight/internal/common/clock/mocks"
	uuidMocks "github.com/promnight/promnight/internal/common/uuid/mocks"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	photostripRepo "github.com/promnight/promnight/internal/repositories/photostrip"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
)

type PhotoboothServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	mr        *miniredis.Miniredis
	client    *redis.Client
	roster    rosterRepo.Repository
	strips    photostripRepo.Repository
	photoDir  string
	service   Service
	ctx       context.Context

	// now is what the mocked clock returns; tests advance it
	now time.Time
}

func (s *PhotoboothServiceTestSuite) SetupTest() {
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

	strips, err := photostripRepo.NewRedis(&photostripRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.strips = strips

	s.photoDir = s.T().TempDir()
	store, err := blobstore.NewLocal(s.photoDir, "/photos")
	s.Require().NoError(err)

	service, err := New(&Config{
		PhotoStripRepo: s.strips,
		RosterRepo:     s.roster,
		BlobStore:      store,
		Hub:            hub.New(),
		Clock:          s.mockClock,
		UUID:           s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = service

	s.Require().NoError(s.roster.SaveCharacter(s.ctx, &rosterRepo.SaveCharacterInput{
		Character: &models.Character{
			ID:        "alex",
			Name:      "Alex Neon",
			Alive:     true,
			Balance:   500,
			LoginCode: "ALEX9",
			Seq:       1,
		},
	}))
}

func (s *PhotoboothServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestPhotoboothServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PhotoboothServiceTestSuite))
}

// fourImages returns a valid strip payload, optionally with a data URL
// prefix on each image
func (s *PhotoboothServiceTestSuite) fourImages(withPrefix bool) []string {
	images := make([]string, 0, models.PhotoStripImageCount)
	for i := 0; i < models.PhotoStripImageCount; i++ {
		encoded := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("frame-%d", i+1)))
		if withPrefix {
			encoded = "data:image/jpeg;base64," + encoded
		}
		images = append(images, encoded)
	}
	return images
}

func (s *PhotoboothServiceTestSuite) TestSaveStrip() {
	result, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      s.fourImages(false),
	})
	s.Require().NoError(err)

	strip := result.Strip
	s.Equal("alex", strip.CharacterID)
	s.Require().Len(strip.ImageRefs, models.PhotoStripImageCount)
	s.Equal(fmt.Sprintf("/photos/strips/%s/1.jpg", strip.ID), strip.ImageRefs[0])

	// The decoded frames landed on disk
	data, err := os.ReadFile(filepath.Join(s.photoDir, "strips", strip.ID, "1.jpg"))
	s.Require().NoError(err)
	s.Equal("frame-1", string(data))
}

func (s *PhotoboothServiceTestSuite) TestSaveStripAcceptsDataURLs() {
	result, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      s.fourImages(true),
	})
	s.Require().NoError(err)

	data, err := os.ReadFile(filepath.Join(s.photoDir, "strips", result.Strip.ID, "4.jpg"))
	s.Require().NoError(err)
	s.Equal("frame-4", string(data))
}

func (s *PhotoboothServiceTestSuite) TestSaveStripWrongImageCount() {
	_, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      s.fourImages(false)[:2],
	})
	s.ErrorIs(err, ErrWrongImageCount)
}

func (s *PhotoboothServiceTestSuite) TestSaveStripInvalidImage() {
	images := s.fourImages(false)
	images[2] = "not base64!!!"

	_, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      images,
	})
	s.ErrorIs(err, ErrInvalidImage)
}

func (s *PhotoboothServiceTestSuite) TestSaveStripUnknownCharacter() {
	_, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "ghost",
		Images:      s.fourImages(false),
	})
	s.ErrorIs(err, ErrCharacterNotFound)
}

func (s *PhotoboothServiceTestSuite) TestListStripsNewestFirst() {
	first, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      s.fourImages(false),
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	second, err := s.service.SaveStrip(s.ctx, &SaveStripInput{
		CharacterID: "alex",
		Images:      s.fourImages(false),
	})
	s.Require().NoError(err)

	result, err := s.service.ListStrips(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(result.Strips, 2)
	s.Equal(second.Strip.ID, result.Strips[0].ID)
	s.Equal(first.Strip.ID, result.Strips[1].ID)
}
