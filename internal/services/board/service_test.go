package board

import (
	"context"
	"fmt"
	"strings"
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
	boardRepo "github.com/promnight/promnight/internal/repositories/board"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
)

type BoardServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	mr        *miniredis.Miniredis
	client    *redis.Client
	roster    rosterRepo.Repository
	boards    boardRepo.Repository
	service   Service
	ctx       context.Context

	// now is what the mocked clock returns; tests advance it
	now time.Time
}

func (s *BoardServiceTestSuite) SetupTest() {
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

	boards, err := boardRepo.NewRedis(&boardRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.boards = boards

	service, err := New(&Config{
		BoardRepo:  s.boards,
		RosterRepo: s.roster,
		Hub:        hub.New(),
		Clock:      s.mockClock,
		UUID:       s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = service

	s.seedCharacter("alex", "Alex Neon", "😎")
	s.seedCharacter("casey", "Casey Cassette", "🎧")
	s.seedCharacter("jamie", "Jamie Jocks", "🏈")
}

func (s *BoardServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestBoardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BoardServiceTestSuite))
}

func (s *BoardServiceTestSuite) seedCharacter(id, name, avatar string) {
	s.Require().NoError(s.roster.SaveCharacter(s.ctx, &rosterRepo.SaveCharacterInput{
		Character: &models.Character{
			ID:          id,
			Name:        name,
			AvatarGlyph: avatar,
			Alive:       true,
			Balance:     500,
			LoginCode:   id + "-CODE",
			Seq:         1,
		},
	}))
}

func (s *BoardServiceTestSuite) TestPostPublic() {
	result, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "alex",
		Body:     "  who spiked the punch  ",
	})
	s.Require().NoError(err)
	s.Equal("who spiked the punch", result.Message.Body)
	s.Equal(models.MessageKindPublic, result.Message.Kind)
	s.False(result.Message.Pinned)
}

func (s *BoardServiceTestSuite) TestPostPublicTruncatesLongBody() {
	// Multibyte runes make the cap a code-point cap, not a byte cap
	body := strings.Repeat("🎈", models.MaxMessageLen+20)
	result, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "alex",
		Body:     body,
	})
	s.Require().NoError(err)
	s.Len([]rune(result.Message.Body), models.MaxMessageLen)
}

func (s *BoardServiceTestSuite) TestPostPublicEmptyBody() {
	_, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "alex",
		Body:     "   ",
	})
	s.ErrorIs(err, ErrEmptyBody)
}

func (s *BoardServiceTestSuite) TestPostPublicUnknownSender() {
	_, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "ghost",
		Body:     "boo",
	})
	s.ErrorIs(err, ErrCharacterNotFound)
}

func (s *BoardServiceTestSuite) TestListPublicResolvesIdentities() {
	_, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "alex",
		Body:     "signed post",
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID:  "casey",
		Body:      "unsigned post",
		Anonymous: true,
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.PostAnnouncement(s.ctx, &PostAnnouncementInput{
		Body: "Welcome to prom night.",
	})
	s.Require().NoError(err)

	feed, err := s.service.ListPublic(s.ctx, &ListPublicInput{})
	s.Require().NoError(err)
	s.Require().Len(feed.Posts, 3)

	// Pinned announcement first, then newest first
	announcement := feed.Posts[0]
	s.True(announcement.Message.Pinned)
	s.Equal(SystemName, announcement.AuthorName)
	s.Equal(SystemAvatar, announcement.AuthorAvatar)

	anonymous := feed.Posts[1]
	s.Equal(AnonymousName, anonymous.AuthorName)
	s.Empty(anonymous.AuthorAvatar)

	signed := feed.Posts[2]
	s.Equal("Alex Neon", signed.AuthorName)
	s.Equal("😎", signed.AuthorAvatar)
}

func (s *BoardServiceTestSuite) TestClearPublic() {
	_, err := s.service.PostPublic(s.ctx, &PostPublicInput{
		SenderID: "alex",
		Body:     "soon gone",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.ClearPublic(s.ctx))

	feed, err := s.service.ListPublic(s.ctx, &ListPublicInput{})
	s.Require().NoError(err)
	s.Len(feed.Posts, 0)
}

func (s *BoardServiceTestSuite) TestPostDM() {
	result, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "alex",
		RecipientID: "casey",
		Body:        "meet me by the punch bowl",
	})
	s.Require().NoError(err)
	s.Equal(models.MessageKindDM, result.Message.Kind)
	s.Equal("casey", result.Message.RecipientID)
}

func (s *BoardServiceTestSuite) TestPostDMToSelf() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "alex",
		RecipientID: "alex",
		Body:        "note to self",
	})
	s.ErrorIs(err, ErrSelfDM)
}

func (s *BoardServiceTestSuite) TestPostDMUnknownRecipient() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "alex",
		RecipientID: "ghost",
		Body:        "anyone there",
	})
	s.ErrorIs(err, ErrCharacterNotFound)
}

func (s *BoardServiceTestSuite) TestThreadsForOrderingAndUnread() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "casey",
		RecipientID: "alex",
		Body:        "first",
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "jamie",
		RecipientID: "alex",
		Body:        "second",
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "casey",
		RecipientID: "alex",
		Body:        "third",
	})
	s.Require().NoError(err)

	threads, err := s.service.ThreadsFor(s.ctx, &ThreadsForInput{UserID: "alex"})
	s.Require().NoError(err)
	s.Require().Len(threads.Threads, 2)

	// Most recently active thread first
	s.Equal("casey", threads.Threads[0].OtherID)
	s.Equal("Casey Cassette", threads.Threads[0].OtherName)
	s.Equal(2, threads.Threads[0].UnreadCount)
	s.Equal("third", threads.Threads[0].LastMessage.Body)

	s.Equal("jamie", threads.Threads[1].OtherID)
	s.Equal(1, threads.Threads[1].UnreadCount)
}

func (s *BoardServiceTestSuite) TestThreadsForEmptyHistoryLast() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "jamie",
		RecipientID: "alex",
		Body:        "hello",
	})
	s.Require().NoError(err)

	threads, err := s.service.ThreadsFor(s.ctx, &ThreadsForInput{UserID: "alex"})
	s.Require().NoError(err)
	s.Require().Len(threads.Threads, 2)
	s.Equal("jamie", threads.Threads[0].OtherID)

	// No history with casey, so that thread trails
	s.Equal("casey", threads.Threads[1].OtherID)
	s.Nil(threads.Threads[1].LastMessage)
	s.Equal(0, threads.Threads[1].UnreadCount)
}

func (s *BoardServiceTestSuite) TestMarkRead() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "casey",
		RecipientID: "alex",
		Body:        "read me",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.MarkRead(s.ctx, &MarkReadInput{
		UserID:  "alex",
		OtherID: "casey",
	}))

	threads, err := s.service.ThreadsFor(s.ctx, &ThreadsForInput{UserID: "alex"})
	s.Require().NoError(err)
	s.Require().Len(threads.Threads, 2)
	s.Equal("casey", threads.Threads[0].OtherID)
	s.Equal(0, threads.Threads[0].UnreadCount)
}

func (s *BoardServiceTestSuite) TestThreadMessagesNewestFirst() {
	_, err := s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "alex",
		RecipientID: "casey",
		Body:        "first",
	})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	_, err = s.service.PostDM(s.ctx, &PostDMInput{
		SenderID:    "casey",
		RecipientID: "alex",
		Body:        "second",
	})
	s.Require().NoError(err)

	// Both directions share the same thread
	thread, err := s.service.ThreadMessages(s.ctx, &ThreadMessagesInput{
		UserID:  "alex",
		OtherID: "casey",
	})
	s.Require().NoError(err)
	s.Require().Len(thread.Messages, 2)
	s.Equal("second", thread.Messages[0].Body)
	s.Equal("first", thread.Messages[1].Body)
}
