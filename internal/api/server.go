package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vplay/vplay/internal/history"
	"github.com/vplay/vplay/internal/orchestrator"
	"github.com/vplay/vplay/internal/playlist"
	"github.com/vplay/vplay/internal/settings"
	"github.com/vplay/vplay/internal/shortcut"
)

// Server is the local HTTP control surface: the UI boundary of the
// orchestration core. It only translates requests into orchestrator and
// service calls; playback decisions stay out of this package.
type Server struct {
	orch      *orchestrator.Orchestrator
	playlists *playlist.Service
	shortcuts *shortcut.Service
	settings  *settings.Service
	history   *history.Service
	router    *mux.Router
}

func NewServer(
	orch *orchestrator.Orchestrator,
	playlists *playlist.Service,
	shortcuts *shortcut.Service,
	sets *settings.Service,
	hist *history.Service,
) *Server {
	s := &Server{
		orch:      orch,
		playlists: playlists,
		shortcuts: shortcuts,
		settings:  sets,
		history:   hist,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/session", s.getSession).Methods(http.MethodGet)
	api.HandleFunc("/transport/{command}", s.postTransport).Methods(http.MethodPost)
	api.HandleFunc("/keys", s.postKey).Methods(http.MethodPost)

	api.HandleFunc("/playlists", s.listPlaylists).Methods(http.MethodGet)
	api.HandleFunc("/playlists", s.createPlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}", s.getPlaylist).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id}", s.patchPlaylist).Methods(http.MethodPatch)
	api.HandleFunc("/playlists/{id}", s.deletePlaylist).Methods(http.MethodDelete)
	api.HandleFunc("/playlists/{id}/items", s.addItems).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/items/{itemID}", s.removeItem).Methods(http.MethodDelete)
	api.HandleFunc("/playlists/{id}/items/{itemID}/play", s.playItem).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/move", s.moveItem).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/sort", s.sortPlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/duplicate", s.duplicatePlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/clear", s.clearPlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}/select", s.selectPlaylist).Methods(http.MethodPost)

	api.HandleFunc("/shortcuts", s.listShortcuts).Methods(http.MethodGet)
	api.HandleFunc("/shortcuts/reset", s.resetShortcuts).Methods(http.MethodPost)
	api.HandleFunc("/shortcuts/enabled", s.setShortcutsEnabled).Methods(http.MethodPost)
	api.HandleFunc("/shortcuts/{id}", s.replaceShortcut).Methods(http.MethodPut)

	api.HandleFunc("/history", s.getHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", s.clearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/history/stats", s.getHistoryStats).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", s.removeHistoryEntry).Methods(http.MethodDelete)

	api.HandleFunc("/settings", s.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.putSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings/reset", s.resetSettings).Methods(http.MethodPost)

	s.router.Handle("/metrics", promhttp.Handler())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeStatus(w http.ResponseWriter, status string) {
	writeJSON(w, map[string]string{"status": status})
}
