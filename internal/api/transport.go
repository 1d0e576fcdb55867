package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vplay/vplay/internal/shortcut"
)

type transportBody struct {
	Seconds  *float64 `json:"seconds,omitempty"`
	Fraction *float64 `json:"fraction,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.orch.Snapshot())
}

func (s *Server) postTransport(w http.ResponseWriter, r *http.Request) {
	command := mux.Vars(r)["command"]

	var body transportBody
	if r.Body != nil {
		// body is optional for most commands
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	m := s.orch.Machine()
	ctx := r.Context()

	switch command {
	case "playPause":
		m.TogglePlayPause()
	case "play":
		m.Play()
	case "pause":
		s.orch.Pause(ctx)
	case "stop":
		s.orch.Stop(ctx)
	case "seekForward":
		m.SeekForward()
	case "seekBackward":
		m.SeekBackward()
	case "seek":
		switch {
		case body.Fraction != nil:
			m.SeekToFraction(*body.Fraction)
		case body.Seconds != nil:
			m.Seek(*body.Seconds)
		default:
			http.Error(w, "seek needs seconds or fraction", http.StatusBadRequest)
			return
		}
	case "setVolume":
		if body.Value == nil {
			http.Error(w, "setVolume needs value", http.StatusBadRequest)
			return
		}
		m.SetVolume(*body.Value)
	case "setRate":
		if body.Value == nil {
			http.Error(w, "setRate needs value", http.StatusBadRequest)
			return
		}
		m.SetRate(*body.Value)
	case "rateUp":
		m.IncreaseRate()
	case "rateDown":
		m.DecreaseRate()
	case "rateReset":
		m.ResetRate()
	case "toggleMute":
		m.ToggleMute()
	case "toggleFullscreen":
		m.ToggleFullscreen()
	case "next":
		if !s.orch.Next(ctx) {
			writeJSON(w, map[string]any{"advanced": false, "session": s.orch.Snapshot()})
			return
		}
	case "previous":
		if !s.orch.Previous(ctx) {
			writeJSON(w, map[string]any{"advanced": false, "session": s.orch.Snapshot()})
			return
		}
	default:
		http.Error(w, "unknown transport command", http.StatusNotFound)
		return
	}

	writeJSON(w, s.orch.Snapshot())
}

type keyBody struct {
	Key       string              `json:"key"`
	Modifiers []shortcut.Modifier `json:"modifiers"`
}

// postKey injects a raw key event into the dispatch engine. The response
// reports consumption so callers know whether to propagate the event.
func (s *Server) postKey(w http.ResponseWriter, r *http.Request) {
	var body keyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Key == "" {
		http.Error(w, "key required", http.StatusBadRequest)
		return
	}
	consumed := s.shortcuts.Dispatcher().HandleKey(body.Key, body.Modifiers)
	writeJSON(w, map[string]bool{"consumed": consumed})
}
