package shortcut

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/repository"
)

const collectionKey = "shortcuts"

type tableBlob struct {
	Enabled  bool      `json:"enabled"`
	Bindings []Binding `json:"bindings"`
}

// Service persists the binding table around a Dispatcher. Edits write
// through; a missing or corrupt blob falls back to the default table.
type Service struct {
	repo *repository.Repo
	d    *Dispatcher
}

func NewService(repo *repository.Repo, d *Dispatcher) *Service {
	return &Service{repo: repo, d: d}
}

func (s *Service) Dispatcher() *Dispatcher { return s.d }

func (s *Service) Load(ctx context.Context) {
	blob, err := s.repo.GetCollection(ctx, collectionKey)
	if err != nil {
		slog.Warn("failed to read shortcut table, using defaults", "err", err)
		return
	}
	if len(blob) == 0 {
		return
	}
	var t tableBlob
	if err := json.Unmarshal(blob, &t); err != nil || len(t.Bindings) == 0 {
		slog.Warn("corrupt shortcut table, using defaults", "err", err)
		return
	}
	s.d.setTable(t.Bindings)
	s.d.SetEnabled(t.Enabled)
}

func (s *Service) save(ctx context.Context) {
	t := tableBlob{Enabled: s.d.Enabled(), Bindings: s.d.Bindings()}
	blob, err := json.Marshal(t)
	if err != nil {
		slog.Error("failed to encode shortcut table", "err", err)
		return
	}
	if err := s.repo.PutCollection(ctx, collectionKey, blob); err != nil {
		slog.Warn("failed to persist shortcut table", "err", err)
	}
}

func (s *Service) Update(ctx context.Context, b Binding) error {
	if err := s.d.Update(b); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

func (s *Service) Replace(ctx context.Context, id uuid.UUID, b Binding) error {
	if err := s.d.Replace(id, b); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

func (s *Service) ResetDefaults(ctx context.Context) {
	s.d.ResetDefaults()
	s.save(ctx)
}

func (s *Service) SetEnabled(ctx context.Context, enabled bool) {
	s.d.SetEnabled(enabled)
	s.save(ctx)
}
