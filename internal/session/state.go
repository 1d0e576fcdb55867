package session

import "github.com/google/uuid"

// State is the session lifecycle state. Finished and Error are terminal
// for the current session; a new Load starts a fresh one.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateFinished State = "finished"
	StateError    State = "error"
)

func (s State) Terminal() bool { return s == StateFinished || s == StateError }

// Rates is the fixed ordered ladder of playback rates. Rate stepping moves
// one position and saturates at the ends.
var Rates = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

const DefaultRate = 1.0

func rateIndex(r float64) int {
	for i, v := range Rates {
		if v == r {
			return i
		}
	}
	return -1
}

// nearestRate snaps an arbitrary requested rate onto the ladder.
func nearestRate(r float64) float64 {
	best := Rates[0]
	for _, v := range Rates[1:] {
		if diff(v, r) < diff(best, r) {
			best = v
		}
	}
	return best
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// Snapshot is the read-only session view handed to the UI layer.
type Snapshot struct {
	State       State     `json:"state"`
	ItemID      uuid.UUID `json:"itemId,omitempty"`
	Title       string    `json:"title,omitempty"`
	Locator     string    `json:"locator,omitempty"`
	CurrentSec  float64   `json:"currentSec"`
	DurationSec float64   `json:"durationSec"`
	Buffered    float64   `json:"buffered"`
	Rate        float64   `json:"rate"`
	Volume      float64   `json:"volume"`
	Muted       bool      `json:"muted"`
	Fullscreen  bool      `json:"fullscreen"`
	Error       string    `json:"error,omitempty"`
}
