package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/repository"
)

const (
	collectionKey = "history"
	maxEntries    = 100

	// a watch past this completion fraction counts as a full view
	completedThreshold = 0.9
)

// Entry records one watch of a media item.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"itemId"`
	Title      string    `json:"title"`
	Locator    string    `json:"locator"`
	WatchedAt  time.Time `json:"watchedAt"`
	WatchedSec float64   `json:"watchedSec"`
	TotalSec   float64   `json:"totalSec"`
}

// Completion returns the watched fraction in [0,1].
func (e *Entry) Completion() float64 {
	if e.TotalSec <= 0 {
		return 0
	}
	c := e.WatchedSec / e.TotalSec
	if c > 1 {
		c = 1
	}
	return c
}

func (e *Entry) Completed() bool { return e.Completion() >= completedThreshold }

// Service keeps the playback history, most recent first, one entry per
// item, capped at maxEntries.
type Service struct {
	repo *repository.Repo

	mu      sync.Mutex
	entries []Entry
}

func NewService(repo *repository.Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, err := s.repo.GetCollection(ctx, collectionKey)
	if err != nil {
		slog.Warn("failed to read history, starting empty", "err", err)
		return
	}
	if len(blob) == 0 {
		return
	}
	var loaded []Entry
	if err := json.Unmarshal(blob, &loaded); err != nil {
		slog.Warn("corrupt history collection, starting empty", "err", err)
		return
	}
	s.entries = loaded
}

func (s *Service) saveLocked(ctx context.Context) {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		slog.Error("failed to encode history", "err", err)
		return
	}
	if err := s.repo.PutCollection(ctx, collectionKey, blob); err != nil {
		slog.Warn("failed to persist history", "err", err)
	}
}

// Record inserts a watch at the head, replacing any older entry for the
// same item.
func (s *Service) Record(ctx context.Context, itemID uuid.UUID, title, locator string, watchedSec, totalSec float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ItemID != itemID {
			kept = append(kept, e)
		}
	}
	s.entries = kept

	e := Entry{
		ID:         uuid.New(),
		ItemID:     itemID,
		Title:      title,
		Locator:    locator,
		WatchedAt:  time.Now(),
		WatchedSec: watchedSec,
		TotalSec:   totalSec,
	}
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
	s.saveLocked(ctx)
}

// Progress returns the saved watch position for an item.
func (s *Service) Progress(itemID uuid.UUID) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ItemID == itemID {
			return s.entries[i].WatchedSec, true
		}
	}
	return 0, false
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.saveLocked(ctx)
			return
		}
	}
}

func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.saveLocked(ctx)
}

// Entries returns the history, most recent first.
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Stats summarizes watch totals.
type Stats struct {
	TotalWatchSec  float64 `json:"totalWatchSec"`
	CompletedCount int     `json:"completedCount"`
	UniqueItems    int     `json:"uniqueItems"`
}

func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st Stats
	seen := make(map[uuid.UUID]struct{})
	for i := range s.entries {
		st.TotalWatchSec += s.entries[i].WatchedSec
		if s.entries[i].Completed() {
			st.CompletedCount++
		}
		seen[s.entries[i].ItemID] = struct{}{}
	}
	st.UniqueItems = len(seen)
	return st
}
