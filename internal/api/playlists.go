package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vplay/vplay/internal/media"
	"github.com/vplay/vplay/internal/playlist"
)

func playlistID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func playlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playlist.ErrNotFound):
		http.Error(w, "playlist not found", http.StatusNotFound)
	case errors.Is(err, playlist.ErrItemNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, playlist.ErrBadPosition):
		http.Error(w, "position out of range", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (s *Server) listPlaylists(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.playlists.List())
}

func (s *Server) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	p := s.playlists.Create(r.Context(), body.Name)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, p)
}

func (s *Server) getPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	p, ok := s.playlists.Get(id)
	if !ok {
		http.Error(w, "playlist not found", http.StatusNotFound)
		return
	}
	writeJSON(w, p)
}

func (s *Server) patchPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	var body struct {
		Name           *string              `json:"name"`
		ShuffleEnabled *bool                `json:"shuffleEnabled"`
		RepeatMode     *playlist.RepeatMode `json:"repeatMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if body.Name != nil {
		if err := s.playlists.Rename(ctx, id, *body.Name); err != nil {
			playlistError(w, err)
			return
		}
	}
	if body.ShuffleEnabled != nil {
		if err := s.playlists.SetShuffle(ctx, id, *body.ShuffleEnabled); err != nil {
			playlistError(w, err)
			return
		}
	}
	if body.RepeatMode != nil {
		if err := s.playlists.SetRepeat(ctx, id, *body.RepeatMode); err != nil {
			playlistError(w, err)
			return
		}
	}
	p, _ := s.playlists.Get(id)
	writeJSON(w, p)
}

func (s *Server) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	if err := s.playlists.Delete(r.Context(), id); err != nil {
		playlistError(w, err)
		return
	}
	writeStatus(w, "deleted")
}

func (s *Server) addItems(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	var body []struct {
		Title   string `json:"title"`
		Locator string `json:"locator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		http.Error(w, "items required", http.StatusBadRequest)
		return
	}
	items := make([]media.Item, 0, len(body))
	for _, b := range body {
		if b.Locator == "" {
			http.Error(w, "locator required", http.StatusBadRequest)
			return
		}
		items = append(items, media.NewItem(b.Title, b.Locator))
	}
	if err := s.playlists.AddItems(r.Context(), id, items); err != nil {
		playlistError(w, err)
		return
	}
	p, _ := s.playlists.Get(id)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, p)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	itemID, err := uuid.Parse(mux.Vars(r)["itemID"])
	if err != nil {
		http.Error(w, "bad item id", http.StatusBadRequest)
		return
	}
	if err := s.playlists.RemoveItem(r.Context(), id, itemID); err != nil {
		playlistError(w, err)
		return
	}
	writeStatus(w, "removed")
}

func (s *Server) playItem(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	itemID, err := uuid.Parse(mux.Vars(r)["itemID"])
	if err != nil {
		http.Error(w, "bad item id", http.StatusBadRequest)
		return
	}
	if err := s.orch.SelectItem(r.Context(), id, itemID); err != nil {
		playlistError(w, err)
		return
	}
	writeJSON(w, s.orch.Snapshot())
}

func (s *Server) moveItem(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	var body struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.playlists.MoveItem(r.Context(), id, body.From, body.To); err != nil {
		playlistError(w, err)
		return
	}
	p, _ := s.playlists.Get(id)
	writeJSON(w, p)
}

func (s *Server) sortPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	var body struct {
		Mode playlist.SortMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.playlists.Sort(r.Context(), id, body.Mode); err != nil {
		playlistError(w, err)
		return
	}
	p, _ := s.playlists.Get(id)
	writeJSON(w, p)
}

func (s *Server) duplicatePlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	p, err := s.playlists.Duplicate(r.Context(), id, body.Name)
	if err != nil {
		playlistError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, p)
}

func (s *Server) clearPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	if err := s.playlists.ClearItems(r.Context(), id); err != nil {
		playlistError(w, err)
		return
	}
	p, _ := s.playlists.Get(id)
	writeJSON(w, p)
}

func (s *Server) selectPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := playlistID(r)
	if err != nil {
		http.Error(w, "bad playlist id", http.StatusBadRequest)
		return
	}
	if err := s.playlists.SetCurrent(r.Context(), id); err != nil {
		playlistError(w, err)
		return
	}
	writeStatus(w, "selected")
}
