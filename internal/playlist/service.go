package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/media"
	"github.com/vplay/vplay/internal/repository"
)

const (
	collectionKey = "playlists"
	currentKey    = "current_playlist"
)

// Service owns all playlists and the current-playlist pointer. Every
// mutation is a single atomic update of the in-memory state followed by a
// persistence write; persistence failures are logged and absorbed, never
// propagated to callers.
type Service struct {
	repo *repository.Repo

	mu        sync.Mutex
	playlists []Playlist
	currentID uuid.UUID
}

func NewService(repo *repository.Repo) *Service {
	return &Service{repo: repo}
}

// Load pulls both collections from the store. A missing or corrupt blob
// resets to an empty collection.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.repo.GetCollection(ctx, collectionKey)
	if err != nil {
		slog.Warn("failed to read playlists, starting empty", "err", err)
	}
	if len(blob) > 0 {
		var loaded []Playlist
		if err := json.Unmarshal(blob, &loaded); err != nil {
			slog.Warn("corrupt playlists collection, starting empty", "err", err)
		} else {
			s.playlists = loaded
		}
	}

	cur, err := s.repo.GetCollection(ctx, currentKey)
	if err == nil && len(cur) > 0 {
		if id, perr := uuid.Parse(string(cur)); perr == nil {
			s.currentID = id
		}
	}
}

func (s *Service) saveLocked(ctx context.Context) {
	blob, err := json.Marshal(s.playlists)
	if err != nil {
		slog.Error("failed to encode playlists", "err", err)
		return
	}
	if err := s.repo.PutCollection(ctx, collectionKey, blob); err != nil {
		slog.Warn("failed to persist playlists", "err", err)
	}
}

func (s *Service) indexLocked(id uuid.UUID) int {
	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) Create(ctx context.Context, name string) Playlist {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Playlist"
	}
	p := New(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists = append(s.playlists, p)
	s.saveLocked(ctx)
	return p.clone()
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)
	if s.currentID == id {
		s.currentID = uuid.Nil
		if len(s.playlists) > 0 {
			s.currentID = s.playlists[0].ID
		}
		s.persistCurrentLocked(ctx)
	}
	s.saveLocked(ctx)
	return nil
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		p.Name = strings.TrimSpace(name)
		p.UpdatedAt = time.Now()
		return nil
	})
}

// Duplicate copies a playlist, its items and traversal settings included.
func (s *Service) Duplicate(ctx context.Context, id uuid.UUID, newName string) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Playlist{}, ErrNotFound
	}
	src := &s.playlists[i]
	dup := New(newName)
	if newName == "" {
		dup.Name = src.Name + " copy"
	}
	dup.SortMode = src.SortMode
	dup.ShuffleEnabled = src.ShuffleEnabled
	dup.RepeatMode = src.RepeatMode
	dup.Items = make([]media.Item, len(src.Items))
	copy(dup.Items, src.Items)

	s.playlists = append(s.playlists, dup)
	s.saveLocked(ctx)
	return dup.clone(), nil
}

func (s *Service) List() []Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Playlist, 0, len(s.playlists))
	for i := range s.playlists {
		out = append(out, s.playlists[i].clone())
	}
	return out
}

func (s *Service) Get(id uuid.UUID) (Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.playlists[i].clone(), true
	}
	return Playlist{}, false
}

// SetCurrent records which playlist drives navigation. uuid.Nil clears it.
func (s *Service) SetCurrent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != uuid.Nil && s.indexLocked(id) < 0 {
		return ErrNotFound
	}
	s.currentID = id
	s.persistCurrentLocked(ctx)
	return nil
}

func (s *Service) persistCurrentLocked(ctx context.Context) {
	if s.currentID == uuid.Nil {
		if err := s.repo.DeleteCollection(ctx, currentKey); err != nil {
			slog.Warn("failed to clear current playlist", "err", err)
		}
		return
	}
	if err := s.repo.PutCollection(ctx, currentKey, []byte(s.currentID.String())); err != nil {
		slog.Warn("failed to persist current playlist", "err", err)
	}
}

// Current returns the current playlist, falling back to the first one.
func (s *Service) Current() (Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID != uuid.Nil {
		if i := s.indexLocked(s.currentID); i >= 0 {
			return s.playlists[i].clone(), true
		}
	}
	if len(s.playlists) > 0 {
		return s.playlists[0].clone(), true
	}
	return Playlist{}, false
}

// mutate runs fn against the playlist with the given id and persists on
// success.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(p *Playlist) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	if err := fn(&s.playlists[i]); err != nil {
		return err
	}
	s.saveLocked(ctx)
	return nil
}

func (s *Service) AddItems(ctx context.Context, id uuid.UUID, items []media.Item) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		p.AddItems(items)
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, id, itemID uuid.UUID) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		return p.RemoveItem(itemID)
	})
}

func (s *Service) MoveItem(ctx context.Context, id uuid.UUID, from, to int) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		return p.MoveItem(from, to)
	})
}

func (s *Service) ClearItems(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		p.Clear()
		return nil
	})
}

func (s *Service) Sort(ctx context.Context, id uuid.UUID, mode SortMode) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		Sort(p, mode)
		return nil
	})
}

func (s *Service) SetShuffle(ctx context.Context, id uuid.UUID, enabled bool) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		p.ShuffleEnabled = enabled
		return nil
	})
}

func (s *Service) SetRepeat(ctx context.Context, id uuid.UUID, mode RepeatMode) error {
	switch mode {
	case RepeatOff, RepeatOne, RepeatAll:
	default:
		return errors.New("unknown repeat mode: " + string(mode))
	}
	return s.mutate(ctx, id, func(p *Playlist) error {
		p.RepeatMode = mode
		return nil
	})
}

// SaveItemPosition records a playback position on a member item.
func (s *Service) SaveItemPosition(ctx context.Context, id, itemID uuid.UUID, seconds float64) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		i := p.IndexOf(itemID)
		if i < 0 {
			return ErrItemNotFound
		}
		p.Items[i].SetPosition(seconds)
		return nil
	})
}

// SaveItemDuration records the engine-reported duration and re-clamps the
// saved position against it.
func (s *Service) SaveItemDuration(ctx context.Context, id, itemID uuid.UUID, seconds float64) error {
	return s.mutate(ctx, id, func(p *Playlist) error {
		i := p.IndexOf(itemID)
		if i < 0 {
			return ErrItemNotFound
		}
		p.Items[i].DurationSec = seconds
		p.Items[i].SetPosition(p.Items[i].PositionSec)
		return nil
	})
}
