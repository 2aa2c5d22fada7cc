package jukebox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
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
	jukeboxRepo "github.com/promnight/promnight/internal/repositories/jukebox"
)

const testTheme = "Prom Theme.mp3"

type JukeboxServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	mr        *miniredis.Miniredis
	client    *redis.Client
	repo      jukeboxRepo.Repository
	service   Service
	ctx       context.Context

	// now is what the mocked clock returns; tests advance it
	now time.Time
}

func (s *JukeboxServiceTestSuite) SetupTest() {
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

	repo, err := jukeboxRepo.NewRedis(&jukeboxRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo

	songDir := s.T().TempDir()
	filenames := []string{
		testTheme,
		"ABBA - Dancing Queen.mp3",
		"The Cramps - Goo Goo Muck.mp3",
		"Intermission.ogg",
		"liner-notes.txt",
	}
	for _, filename := range filenames {
		s.Require().NoError(os.WriteFile(filepath.Join(songDir, filename), []byte("audio"), 0o644))
	}

	service, err := New(&Config{
		JukeboxRepo:   s.repo,
		Hub:           hub.New(),
		Clock:         s.mockClock,
		UUID:          s.mockUUID,
		SongDir:       songDir,
		ThemeFilename: testTheme,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *JukeboxServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestJukeboxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JukeboxServiceTestSuite))
}

func (s *JukeboxServiceTestSuite) enqueue(filename string, priority int) *models.QueueEntry {
	result, err := s.service.Enqueue(s.ctx, &EnqueueInput{
		Filename:    filename,
		RequesterID: "alex",
		Priority:    priority,
	})
	s.Require().NoError(err)
	return result.Entry
}

func TestParseSong(t *testing.T) {
	song := parseSong("ABBA - Dancing Queen.mp3")
	if song.Artist != "ABBA" || song.Title != "Dancing Queen" {
		t.Errorf("unexpected parse: %q / %q", song.Artist, song.Title)
	}

	// No separator falls back to the unknown artist
	song = parseSong("Intermission.ogg")
	if song.Artist != UnknownArtist || song.Title != "Intermission" {
		t.Errorf("unexpected fallback parse: %q / %q", song.Artist, song.Title)
	}
}

func (s *JukeboxServiceTestSuite) TestCatalogExcludesThemeAndSorts() {
	result, err := s.service.Catalog(s.ctx)
	s.Require().NoError(err)

	// The theme and non-audio files are invisible
	s.Require().Len(result.Songs, 3)
	s.Equal("ABBA - Dancing Queen.mp3", result.Songs[0].Filename)
	s.Equal("The Cramps - Goo Goo Muck.mp3", result.Songs[1].Filename)
	s.Equal("Intermission.ogg", result.Songs[2].Filename)
	s.Equal(UnknownArtist, result.Songs[2].Artist)
}

func (s *JukeboxServiceTestSuite) TestEnqueue() {
	entry := s.enqueue("ABBA - Dancing Queen.mp3", 0)
	s.Equal(models.QueueStatusQueued, entry.Status)
	s.Equal("ABBA", entry.Song.Artist)
	s.Equal("alex", entry.RequesterID)
}

func (s *JukeboxServiceTestSuite) TestEnqueueDuplicate() {
	s.enqueue("ABBA - Dancing Queen.mp3", 0)

	_, err := s.service.Enqueue(s.ctx, &EnqueueInput{
		Filename:    "ABBA - Dancing Queen.mp3",
		RequesterID: "casey",
	})
	s.ErrorIs(err, ErrDuplicateEntry)
}

func (s *JukeboxServiceTestSuite) TestEnqueueThemeReserved() {
	_, err := s.service.Enqueue(s.ctx, &EnqueueInput{
		Filename:    testTheme,
		RequesterID: "alex",
	})
	s.ErrorIs(err, ErrThemeReserved)
}

func (s *JukeboxServiceTestSuite) TestEnqueueUnknownSong() {
	_, err := s.service.Enqueue(s.ctx, &EnqueueInput{
		Filename:    "missing.mp3",
		RequesterID: "alex",
	})
	s.ErrorIs(err, ErrSongNotFound)
}

func (s *JukeboxServiceTestSuite) TestEnsureNowPlayingPlayOrder() {
	first := s.enqueue("ABBA - Dancing Queen.mp3", 0)

	s.now = s.now.Add(time.Minute)
	boosted := s.enqueue("The Cramps - Goo Goo Muck.mp3", 5)

	s.now = s.now.Add(time.Minute)
	s.enqueue("Intermission.ogg", 0)

	// Highest priority wins regardless of request time
	playing, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(playing.Entry)
	s.Equal(boosted.ID, playing.Entry.ID)
	s.Equal(models.QueueStatusPlaying, playing.Entry.Status)

	// Remaining entries order by request time
	upNext, err := s.service.UpNext(s.ctx, &UpNextInput{})
	s.Require().NoError(err)
	s.Require().Len(upNext.Entries, 2)
	s.Equal(first.ID, upNext.Entries[0].ID)
}

func (s *JukeboxServiceTestSuite) TestEnsureNowPlayingIdle() {
	playing, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Nil(playing.Entry)
}

func (s *JukeboxServiceTestSuite) TestFinishPromotesNext() {
	first := s.enqueue("ABBA - Dancing Queen.mp3", 0)
	s.now = s.now.Add(time.Minute)
	second := s.enqueue("The Cramps - Goo Goo Muck.mp3", 0)

	playing, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, playing.Entry.ID)

	s.Require().NoError(s.service.Finish(s.ctx, &FinishInput{EntryID: first.ID}))

	finished, err := s.repo.GetEntry(s.ctx, &jukeboxRepo.GetEntryInput{EntryID: first.ID})
	s.Require().NoError(err)
	s.Equal(models.QueueStatusPlayed, finished.Status)

	// The slot is free, so the next observer promotes
	playing, err = s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, playing.Entry.ID)

	// Finishing the song frees its file for a repeat request
	entry := s.enqueue("ABBA - Dancing Queen.mp3", 0)
	s.NotEqual(first.ID, entry.ID)
}

func (s *JukeboxServiceTestSuite) TestFinishStaleSignal() {
	first := s.enqueue("ABBA - Dancing Queen.mp3", 0)

	playing, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, playing.Entry.ID)

	// A signal for an entry that is not playing changes nothing
	s.Require().NoError(s.service.Finish(s.ctx, &FinishInput{EntryID: "stale"}))

	current, err := s.service.NowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(current.Entry)
	s.Equal(first.ID, current.Entry.ID)
}

func (s *JukeboxServiceTestSuite) TestSkip() {
	first := s.enqueue("ABBA - Dancing Queen.mp3", 0)

	_, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Skip(s.ctx, &SkipInput{EntryID: first.ID}))

	skipped, err := s.repo.GetEntry(s.ctx, &jukeboxRepo.GetEntryInput{EntryID: first.ID})
	s.Require().NoError(err)
	s.Equal(models.QueueStatusSkipped, skipped.Status)
}

func (s *JukeboxServiceTestSuite) TestForcePlayDisplacesCurrent() {
	first := s.enqueue("ABBA - Dancing Queen.mp3", 0)

	_, err := s.service.EnsureNowPlaying(s.ctx)
	s.Require().NoError(err)

	forced, err := s.service.ForcePlay(s.ctx, &ForcePlayInput{})
	s.Require().NoError(err)
	s.Equal(testTheme, forced.Entry.Song.Filename)
	s.Equal(models.QueueStatusPlaying, forced.Entry.Status)
	s.Equal(models.PriorityForced, forced.Entry.Priority)

	// Exactly one entry is playing and the displaced one is skipped
	current, err := s.service.NowPlaying(s.ctx)
	s.Require().NoError(err)
	s.Equal(forced.Entry.ID, current.Entry.ID)

	displaced, err := s.repo.GetEntry(s.ctx, &jukeboxRepo.GetEntryInput{EntryID: first.ID})
	s.Require().NoError(err)
	s.Equal(models.QueueStatusSkipped, displaced.Status)
}

func (s *JukeboxServiceTestSuite) TestForcePlayIdempotent() {
	forced, err := s.service.ForcePlay(s.ctx, &ForcePlayInput{})
	s.Require().NoError(err)

	// Forcing again reuses the live theme entry
	again, err := s.service.ForcePlay(s.ctx, &ForcePlayInput{})
	s.Require().NoError(err)
	s.Equal(forced.Entry.ID, again.Entry.ID)
}
