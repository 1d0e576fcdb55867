package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vplay/vplay/internal/repository"
)

const collectionKey = "settings"

// Settings are the persisted user preferences that influence playback
// orchestration.
type Settings struct {
	DefaultVolume    float64 `json:"defaultVolume"`
	RememberVolume   bool    `json:"rememberVolume"`
	AutoPlayNext     bool    `json:"autoPlayNext"`
	DefaultRate      float64 `json:"defaultRate"`
	RememberPosition bool    `json:"rememberPosition"`
	ShortcutsEnabled bool    `json:"shortcutsEnabled"`
}

func Defaults() Settings {
	return Settings{
		DefaultVolume:    1.0,
		RememberVolume:   true,
		AutoPlayNext:     true,
		DefaultRate:      1.0,
		RememberPosition: true,
		ShortcutsEnabled: true,
	}
}

// Service persists one settings blob; missing or corrupt data resets to
// defaults.
type Service struct {
	repo *repository.Repo

	mu  sync.Mutex
	cur Settings
}

func NewService(repo *repository.Repo) *Service {
	return &Service{repo: repo, cur: Defaults()}
}

func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, err := s.repo.GetCollection(ctx, collectionKey)
	if err != nil {
		slog.Warn("failed to read settings, using defaults", "err", err)
		return
	}
	if len(blob) == 0 {
		return
	}
	loaded := Defaults()
	if err := json.Unmarshal(blob, &loaded); err != nil {
		slog.Warn("corrupt settings, using defaults", "err", err)
		return
	}
	s.cur = loaded
}

func (s *Service) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Service) Put(ctx context.Context, next Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.DefaultVolume < 0 {
		next.DefaultVolume = 0
	}
	if next.DefaultVolume > 1 {
		next.DefaultVolume = 1
	}
	s.cur = next
	s.saveLocked(ctx)
}

func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Defaults()
	s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) {
	blob, err := json.Marshal(s.cur)
	if err != nil {
		slog.Error("failed to encode settings", "err", err)
		return
	}
	if err := s.repo.PutCollection(ctx, collectionKey, blob); err != nil {
		slog.Warn("failed to persist settings", "err", err)
	}
}
