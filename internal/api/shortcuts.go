package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vplay/vplay/internal/shortcut"
)

func (s *Server) listShortcuts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"enabled":  s.shortcuts.Dispatcher().Enabled(),
		"bindings": s.shortcuts.Dispatcher().Bindings(),
	})
}

func (s *Server) replaceShortcut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "bad binding id", http.StatusBadRequest)
		return
	}
	var b shortcut.Binding
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.Key == "" {
		http.Error(w, "binding with key required", http.StatusBadRequest)
		return
	}
	if err := s.shortcuts.Replace(r.Context(), id, b); err != nil {
		http.Error(w, "binding not found", http.StatusNotFound)
		return
	}
	writeJSON(w, s.shortcuts.Dispatcher().Bindings())
}

func (s *Server) resetShortcuts(w http.ResponseWriter, r *http.Request) {
	s.shortcuts.ResetDefaults(r.Context())
	writeJSON(w, s.shortcuts.Dispatcher().Bindings())
}

func (s *Server) setShortcutsEnabled(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	s.shortcuts.SetEnabled(r.Context(), body.Enabled)
	writeStatus(w, "ok")
}

func (s *Server) getHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.history.Entries())
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	s.history.Clear(r.Context())
	writeStatus(w, "cleared")
}

func (s *Server) getHistoryStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.history.Stats())
}

func (s *Server) removeHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "bad entry id", http.StatusBadRequest)
		return
	}
	s.history.Remove(r.Context(), id)
	writeStatus(w, "removed")
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.settings.Get())
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	next := s.settings.Get()
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	s.settings.Put(r.Context(), next)
	// the global shortcut flag lives in settings and on the dispatcher
	s.shortcuts.SetEnabled(r.Context(), next.ShortcutsEnabled)
	writeJSON(w, s.settings.Get())
}

func (s *Server) resetSettings(w http.ResponseWriter, r *http.Request) {
	s.settings.Reset(r.Context())
	s.shortcuts.SetEnabled(r.Context(), s.settings.Get().ShortcutsEnabled)
	writeJSON(w, s.settings.Get())
}
