package jukebox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/promnight/promnight/internal/common/clock"
	"github.com/promnight/promnight/internal/common/uuid"
	"github.com/promnight/promnight/internal/hub"
	"github.com/promnight/promnight/internal/models"
	jukeboxRepo "github.com/promnight/promnight/internal/repositories/jukebox"
)

// UnknownArtist is used when a filename has no "artist - title" form
const UnknownArtist = "Unknown"

var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".wav":  true,
	".flac": true,
}

// Config holds the dependencies of the jukebox service
type Config struct {
	JukeboxRepo jukeboxRepo.Repository
	Hub         *hub.Hub
	Clock       clock.Clock
	UUID        uuid.UUID

	// SongDir is the directory scanned for playable files
	SongDir string

	// ThemeFilename is the reserved track queued by force-play only
	ThemeFilename string
}

// service implements the Service interface
type service struct {
	jukeboxRepo   jukeboxRepo.Repository
	hub           *hub.Hub
	clock         clock.Clock
	uuid          uuid.UUID
	songDir       string
	themeFilename string
	collator      *collate.Collator
}

// New creates a new jukebox service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.JukeboxRepo == nil {
		return nil, errors.New("jukebox repository cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.SongDir == "" {
		return nil, errors.New("song directory cannot be empty")
	}
	if cfg.ThemeFilename == "" {
		return nil, errors.New("theme filename cannot be empty")
	}
	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.UUID == nil {
		cfg.UUID = uuid.New()
	}

	return &service{
		jukeboxRepo:   cfg.JukeboxRepo,
		hub:           cfg.Hub,
		clock:         cfg.Clock,
		uuid:          cfg.UUID,
		songDir:       cfg.SongDir,
		themeFilename: cfg.ThemeFilename,
		collator:      collate.New(language.Und, collate.IgnoreCase),
	}, nil
}

// parseSong derives title and artist from an "<artist> - <title>"
// filename stem
func parseSong(filename string) *models.Song {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	song := &models.Song{Filename: filename}

	if artist, title, found := strings.Cut(stem, " - "); found {
		song.Artist = strings.TrimSpace(artist)
		song.Title = strings.TrimSpace(title)
	} else {
		song.Artist = UnknownArtist
		song.Title = strings.TrimSpace(stem)
	}

	return song
}

// scan reads the song directory. Always called outside any state
// mutation so a slow disk cannot stall the queue.
func (s *service) scan() ([]*models.Song, error) {
	dirEntries, err := os.ReadDir(s.songDir)
	if err != nil {
		return nil, err
	}

	songs := make([]*models.Song, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(dirEntry.Name()))] {
			continue
		}
		songs = append(songs, parseSong(dirEntry.Name()))
	}

	return songs, nil
}

// Catalog lists the player-visible songs
func (s *service) Catalog(ctx context.Context) (*CatalogOutput, error) {
	songs, err := s.scan()
	if err != nil {
		return nil, err
	}

	visible := make([]*models.Song, 0, len(songs))
	for _, song := range songs {
		if song.Filename == s.themeFilename {
			continue
		}
		visible = append(visible, song)
	}

	sort.Slice(visible, func(i, j int) bool {
		if cmp := s.collator.CompareString(visible[i].Artist, visible[j].Artist); cmp != 0 {
			return cmp < 0
		}
		return s.collator.CompareString(visible[i].Title, visible[j].Title) < 0
	})

	return &CatalogOutput{Songs: visible}, nil
}

// findSong locates a filename in the scanned directory
func (s *service) findSong(filename string) (*models.Song, error) {
	songs, err := s.scan()
	if err != nil {
		return nil, err
	}

	for _, song := range songs {
		if song.Filename == filename {
			return song, nil
		}
	}

	return nil, ErrSongNotFound
}

// enqueue claims the filename and stores a queued entry
func (s *service) enqueue(ctx context.Context, song *models.Song, requesterID string, priority int) (*models.QueueEntry, error) {
	entry := &models.QueueEntry{
		ID:          s.uuid.NewUUID(),
		Song:        *song,
		RequesterID: requesterID,
		Status:      models.QueueStatusQueued,
		Priority:    priority,
		RequestedAt: s.clock.Now(),
	}

	claimed, err := s.jukeboxRepo.ClaimFile(ctx, &jukeboxRepo.ClaimFileInput{
		FileKey: slug.Make(song.Filename),
		EntryID: entry.ID,
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrDuplicateEntry
	}

	if err := s.jukeboxRepo.SaveEntry(ctx, &jukeboxRepo.SaveEntryInput{Entry: entry}); err != nil {
		return nil, err
	}

	return entry, nil
}

// Enqueue adds a song to the queue
func (s *service) Enqueue(ctx context.Context, input *EnqueueInput) (*EnqueueOutput, error) {
	if input == nil || input.Filename == "" {
		return nil, errors.New("input and filename cannot be empty")
	}

	if input.Filename == s.themeFilename {
		return nil, ErrThemeReserved
	}

	song, err := s.findSong(input.Filename)
	if err != nil {
		return nil, err
	}

	entry, err := s.enqueue(ctx, song, input.RequesterID, input.Priority)
	if err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventQueueUpdate, map[string]any{"entryId": entry.ID})

	return &EnqueueOutput{Entry: entry}, nil
}

// byPlayOrder sorts entries by priority (highest first), then request
// time (earliest first), then ID for a deterministic tie-break.
func byPlayOrder(entries []*models.QueueEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.RequestedAt.Equal(b.RequestedAt) {
			return a.RequestedAt.Before(b.RequestedAt)
		}
		return a.ID < b.ID
	})
}

// EnsureNowPlaying returns the playing entry, promoting when idle
func (s *service) EnsureNowPlaying(ctx context.Context) (*EnsureNowPlayingOutput, error) {
	playing, err := s.jukeboxRepo.NowPlaying(ctx)
	if err != nil {
		return nil, err
	}
	if playing != nil {
		return &EnsureNowPlayingOutput{Entry: playing}, nil
	}

	queued, err := s.jukeboxRepo.QueuedEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(queued.Entries) == 0 {
		return &EnsureNowPlayingOutput{}, nil
	}

	byPlayOrder(queued.Entries)

	for _, entry := range queued.Entries {
		acquired, err := s.jukeboxRepo.PromoteToPlaying(ctx, &jukeboxRepo.PromoteToPlayingInput{
			EntryID: entry.ID,
		})
		if err != nil {
			return nil, err
		}
		if !acquired {
			// A concurrent caller won the slot
			playing, err := s.jukeboxRepo.NowPlaying(ctx)
			if err != nil {
				return nil, err
			}
			return &EnsureNowPlayingOutput{Entry: playing}, nil
		}

		entry.Status = models.QueueStatusPlaying
		entry.StartedAt = s.clock.Now()
		if err := s.jukeboxRepo.UpdateEntry(ctx, &jukeboxRepo.UpdateEntryInput{Entry: entry}); err != nil {
			return nil, err
		}

		s.hub.EmitAll(hub.EventNowPlaying, map[string]any{
			"entryId": entry.ID,
			"song":    entry.Song,
		})
		s.hub.EmitAll(hub.EventQueueUpdate, map[string]any{"entryId": entry.ID})

		return &EnsureNowPlayingOutput{Entry: entry}, nil
	}

	return &EnsureNowPlayingOutput{}, nil
}

// NowPlaying returns the playing entry without promoting
func (s *service) NowPlaying(ctx context.Context) (*NowPlayingOutput, error) {
	playing, err := s.jukeboxRepo.NowPlaying(ctx)
	if err != nil {
		return nil, err
	}
	return &NowPlayingOutput{Entry: playing}, nil
}

// UpNext returns the queued entries in play order
func (s *service) UpNext(ctx context.Context, input *UpNextInput) (*UpNextOutput, error) {
	if input == nil {
		input = &UpNextInput{}
	}

	queued, err := s.jukeboxRepo.QueuedEntries(ctx)
	if err != nil {
		return nil, err
	}

	byPlayOrder(queued.Entries)
	entries := queued.Entries
	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}

	return &UpNextOutput{Entries: entries}, nil
}

// complete moves a playing entry to a terminal status. Signals for an
// entry that is not currently playing are benign races and ignored.
func (s *service) complete(ctx context.Context, entryID string, status models.QueueStatus) error {
	entry, err := s.jukeboxRepo.GetEntry(ctx, &jukeboxRepo.GetEntryInput{EntryID: entryID})
	if err != nil {
		if errors.Is(err, jukeboxRepo.ErrEntryNotFound) {
			return nil
		}
		return err
	}

	released, err := s.jukeboxRepo.ClearNowPlaying(ctx, &jukeboxRepo.ClearNowPlayingInput{
		EntryID: entryID,
	})
	if err != nil {
		return err
	}
	if !released {
		return nil
	}

	entry.Status = status
	entry.EndedAt = s.clock.Now()
	if err := s.jukeboxRepo.UpdateEntry(ctx, &jukeboxRepo.UpdateEntryInput{Entry: entry}); err != nil {
		return err
	}

	if err := s.jukeboxRepo.ReleaseFile(ctx, &jukeboxRepo.ReleaseFileInput{
		FileKey: slug.Make(entry.Song.Filename),
		EntryID: entry.ID,
	}); err != nil {
		return err
	}

	queued, err := s.jukeboxRepo.QueuedEntries(ctx)
	if err != nil {
		return err
	}
	if len(queued.Entries) == 0 {
		s.hub.EmitAll(hub.EventJukeboxStop, nil)
	} else {
		s.hub.EmitAll(hub.EventQueueUpdate, map[string]any{"entryId": entry.ID})
	}

	return nil
}

// Finish marks a playing entry played
func (s *service) Finish(ctx context.Context, input *FinishInput) error {
	if input == nil || input.EntryID == "" {
		return errors.New("input and entry ID cannot be empty")
	}
	return s.complete(ctx, input.EntryID, models.QueueStatusPlayed)
}

// Skip marks a playing entry skipped
func (s *service) Skip(ctx context.Context, input *SkipInput) error {
	if input == nil || input.EntryID == "" {
		return errors.New("input and entry ID cannot be empty")
	}
	return s.complete(ctx, input.EntryID, models.QueueStatusSkipped)
}

// ForcePlay pre-empts normal playback with the theme track. Exactly
// one entry is playing afterwards; a displaced entry is skipped.
func (s *service) ForcePlay(ctx context.Context, input *ForcePlayInput) (*ForcePlayOutput, error) {
	if input == nil {
		input = &ForcePlayInput{}
	}

	fileKey := slug.Make(s.themeFilename)

	var entry *models.QueueEntry
	claimedBy, err := s.jukeboxRepo.GetFileClaim(ctx, &jukeboxRepo.GetFileClaimInput{
		FileKey: fileKey,
	})
	if err != nil {
		return nil, err
	}

	if claimedBy != "" {
		// The theme is already queued or playing; reuse its entry
		entry, err = s.jukeboxRepo.GetEntry(ctx, &jukeboxRepo.GetEntryInput{EntryID: claimedBy})
		if err != nil && !errors.Is(err, jukeboxRepo.ErrEntryNotFound) {
			return nil, err
		}
	}

	if entry == nil {
		entry, err = s.enqueue(ctx, parseSong(s.themeFilename), input.RequesterID, models.PriorityForced)
		if err != nil {
			return nil, err
		}
	}

	previousID, err := s.jukeboxRepo.ForceNowPlaying(ctx, &jukeboxRepo.ForceNowPlayingInput{
		EntryID: entry.ID,
	})
	if err != nil {
		return nil, err
	}

	if previousID != "" {
		previous, err := s.jukeboxRepo.GetEntry(ctx, &jukeboxRepo.GetEntryInput{EntryID: previousID})
		if err == nil {
			previous.Status = models.QueueStatusSkipped
			previous.EndedAt = s.clock.Now()
			if err := s.jukeboxRepo.UpdateEntry(ctx, &jukeboxRepo.UpdateEntryInput{Entry: previous}); err != nil {
				return nil, err
			}
			if err := s.jukeboxRepo.ReleaseFile(ctx, &jukeboxRepo.ReleaseFileInput{
				FileKey: slug.Make(previous.Song.Filename),
				EntryID: previous.ID,
			}); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, jukeboxRepo.ErrEntryNotFound) {
			return nil, err
		}
	}

	entry.Status = models.QueueStatusPlaying
	entry.Priority = models.PriorityForced
	if entry.StartedAt.IsZero() {
		entry.StartedAt = s.clock.Now()
	}
	if err := s.jukeboxRepo.UpdateEntry(ctx, &jukeboxRepo.UpdateEntryInput{Entry: entry}); err != nil {
		return nil, err
	}

	s.hub.EmitAll(hub.EventNowPlaying, map[string]any{
		"entryId": entry.ID,
		"song":    entry.Song,
		"forced":  true,
	})

	return &ForcePlayOutput{Entry: entry}, nil
}
