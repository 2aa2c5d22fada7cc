package board

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/common/uuid"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	boardRepo "github.com/promnight/promnight/internal/repositories/board"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
)

// Config holds the dependencies of the board service
type Config struct {
	BoardRepo  boardRepo.Repository
	RosterRepo rosterRepo.Repository
	Hub        *hub.Hub
	Clock      clock.Clock
	UUID       uuid.UUID
}

// service implements the Service interface
type service struct {
	boardRepo  boardRepo.Repository
	rosterRepo rosterRepo.Repository
	hub        *hub.Hub
	clock      clock.Clock
	uuid       uuid.UUID
}

// New creates a new board service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.BoardRepo == nil {
		return nil, errors.New("board repository cannot be nil")
	}
	if cfg.RosterRepo == nil {
		return nil, errors.New("roster repository cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.UUID == nil {
		cfg.UUID = uuid.New()
	}

	return &service{
		boardRepo:  cfg.BoardRepo,
		rosterRepo: cfg.RosterRepo,
		hub:        cfg.Hub,
		clock:      cfg.Clock,
		uuid:       cfg.UUID,
	}, nil
}

// truncateBody trims and caps a body at the maximum length in code
// points, not bytes.
func truncateBody(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) > models.MaxMessageLen {
		return string(runes[:models.MaxMessageLen])
	}
	return body
}

// PostPublic posts a message on the shared feed
func (s *service) PostPublic(ctx context.Context, input *PostPublicInput) (*PostPublicOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	body := truncateBody(input.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
		CharacterID: input.SenderID,
	}); err != nil {
		if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	message := &models.Message{
		ID:        s.uuid.NewUUID(),
		Kind:      models.MessageKindPublic,
		SenderID:  input.SenderID,
		Body:      body,
		Anonymous: input.Anonymous,
		CreatedAt: s.clock.Now(),
	}

	if err := s.boardRepo.SaveMessage(ctx, &boardRepo.SaveMessageInput{Message: message}); err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventBoardUpdate, map[string]any{"messageId": message.ID})

	return &PostPublicOutput{Message: message}, nil
}

// PostAnnouncement posts a pinned, system-authored message
func (s *service) PostAnnouncement(ctx context.Context, input *PostAnnouncementInput) (*PostAnnouncementOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	body := truncateBody(input.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	message := &models.Message{
		ID:        s.uuid.NewUUID(),
		Kind:      models.MessageKindPublic,
		Body:      body,
		Pinned:    true,
		CreatedAt: s.clock.Now(),
	}

	if err := s.boardRepo.SaveMessage(ctx, &boardRepo.SaveMessageInput{Message: message}); err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventAnnouncement, map[string]any{"body": body})
	s.hub.EmitAll(hub.EventBoardUpdate, map[string]any{"messageId": message.ID})

	return &PostAnnouncementOutput{Message: message}, nil
}

// ListPublic returns the feed with display identities resolved
func (s *service) ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error) {
	if input == nil {
		input = &ListPublicInput{}
	}

	feed, err := s.boardRepo.ListPublic(ctx, &boardRepo.ListPublicInput{Limit: input.Limit})
	if err != nil {
		return nil, err
	}

	posts := make([]*PublicPost, 0, len(feed.Messages))
	for _, message := range feed.Messages {
		post := &PublicPost{Message: message}
		switch {
		case message.Anonymous:
			post.AuthorName = AnonymousName
		case message.SenderID == "":
			post.AuthorName = SystemName
			post.AuthorAvatar = SystemAvatar
		default:
			character, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
				CharacterID: message.SenderID,
			})
			if err != nil {
				if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
					post.AuthorName = AnonymousName
					break
				}
				return nil, err
			}
			post.AuthorName = character.Name
			post.AuthorAvatar = character.AvatarGlyph
		}
		posts = append(posts, post)
	}

	return &ListPublicOutput{Posts: posts}, nil
}

// ClearPublic deletes all public messages
func (s *service) ClearPublic(ctx context.Context) error {
	if err := s.boardRepo.ClearPublic(ctx); err != nil {
		return err
	}

	s.hub.EmitAll(hub.EventBoardCleared, nil)

	return nil
}

// PostDM sends a private message
func (s *service) PostDM(ctx context.Context, input *PostDMInput) (*PostDMOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.SenderID == input.RecipientID {
		return nil, ErrSelfDM
	}

	body := truncateBody(input.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	for _, characterID := range []string{input.SenderID, input.RecipientID} {
		if _, err := s.rosterRepo.GetCharacter(ctx, &rosterRepo.GetCharacterInput{
			CharacterID: characterID,
		}); err != nil {
			if errors.Is(err, rosterRepo.ErrCharacterNotFound) {
				return nil, ErrCharacterNotFound
			}
			return nil, err
		}
	}

	message := &models.Message{
		ID:          s.uuid.NewUUID(),
		Kind:        models.MessageKindDM,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Body:        body,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.boardRepo.SaveMessage(ctx, &boardRepo.SaveMessageInput{Message: message}); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"messageId": message.ID,
		"senderId":  message.SenderID,
	}
	s.hub.EmitTo(input.RecipientID, hub.EventDM, payload)
	s.hub.EmitTo(input.SenderID, hub.EventDM, payload)

	return &PostDMOutput{Message: message}, nil
}

// ThreadsFor lists one thread per other character
func (s *service) ThreadsFor(ctx context.Context, input *ThreadsForInput) (*ThreadsForOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	roster, err := s.rosterRepo.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}

	threads := make([]*Thread, 0, len(roster.Characters))
	for _, character := range roster.Characters {
		if character.ID == input.UserID {
			continue
		}

		last, err := s.boardRepo.ThreadMessages(ctx, &boardRepo.ThreadMessagesInput{
			UserID:  input.UserID,
			OtherID: character.ID,
			Limit:   1,
		})
		if err != nil {
			return nil, err
		}

		unread, err := s.boardRepo.UnreadCount(ctx, &boardRepo.UnreadCountInput{
			UserID:  input.UserID,
			OtherID: character.ID,
		})
		if err != nil {
			return nil, err
		}

		thread := &Thread{
			OtherID:     character.ID,
			OtherName:   character.Name,
			OtherAvatar: character.AvatarGlyph,
			UnreadCount: int(unread),
		}
		if len(last.Messages) > 0 {
			thread.LastMessage = last.Messages[0]
		}
		threads = append(threads, thread)
	}

	// Most recently active first; threads with no history last
	sort.SliceStable(threads, func(i, j int) bool {
		a, b := threads[i].LastMessage, threads[j].LastMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	return &ThreadsForOutput{Threads: threads}, nil
}

// ThreadMessages returns one conversation, most recent first
func (s *service) ThreadMessages(ctx context.Context, input *ThreadMessagesInput) (*ThreadMessagesOutput, error) {
	if input == nil || input.UserID == "" || input.OtherID == "" {
		return nil, errors.New("input and character IDs cannot be empty")
	}

	thread, err := s.boardRepo.ThreadMessages(ctx, &boardRepo.ThreadMessagesInput{
		UserID:  input.UserID,
		OtherID: input.OtherID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ThreadMessagesOutput{Messages: thread.Messages}, nil
}

// MarkRead marks all DMs from the other party as read
func (s *service) MarkRead(ctx context.Context, input *MarkReadInput) error {
	if input == nil || input.UserID == "" || input.OtherID == "" {
		return errors.New("input and character IDs cannot be empty")
	}

	return s.boardRepo.MarkRead(ctx, &boardRepo.MarkReadInput{
		UserID:  input.UserID,
		OtherID: input.OtherID,
	})
}
