package shortcut

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Action is the closed enumeration of transport and UI actions a key press
// can resolve to.
type Action string

const (
	ActionPlayPause            Action = "play_pause"
	ActionSeekBackward         Action = "seek_backward"
	ActionSeekForward          Action = "seek_forward"
	ActionVolumeUp             Action = "volume_up"
	ActionVolumeDown           Action = "volume_down"
	ActionToggleFullscreen     Action = "toggle_fullscreen"
	ActionToggleMute           Action = "toggle_mute"
	ActionPreviousFrame        Action = "previous_frame"
	ActionNextFrame            Action = "next_frame"
	ActionSeekToProgress       Action = "seek_to_progress"
	ActionSlowerPlayback       Action = "slower_playback"
	ActionFasterPlayback       Action = "faster_playback"
	ActionResetPlaybackSpeed   Action = "reset_playback_speed"
	ActionQuit                 Action = "quit"
	ActionNewWindow            Action = "new_window"
	ActionCloseWindow          Action = "close_window"
	ActionToggleSubtitle       Action = "toggle_subtitle"
	ActionIncreaseSubtitleSize Action = "increase_subtitle_size"
	ActionDecreaseSubtitleSize Action = "decrease_subtitle_size"
	ActionShowPlaylist         Action = "show_playlist"
	ActionShowSettings         Action = "show_settings"
)

// Modifier is a held modifier key token. ModCtrl is the primary modifier.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModShift Modifier = "shift"
	ModSuper Modifier = "super"
)

// Binding associates an action with a key and an exact modifier set.
// Bindings resolve in table order: the first enabled exact match wins.
type Binding struct {
	ID        uuid.UUID  `json:"id"`
	Action    Action     `json:"action"`
	Key       string     `json:"key"`
	Modifiers []Modifier `json:"modifiers"`
	Enabled   bool       `json:"enabled"`
}

func newBinding(action Action, key string, mods ...Modifier) Binding {
	return Binding{
		ID:        uuid.New(),
		Action:    action,
		Key:       key,
		Modifiers: mods,
		Enabled:   true,
	}
}

// matches tests exact key and modifier-set equality (set equality, not
// subset).
func (b *Binding) matches(key string, mods []Modifier) bool {
	if !strings.EqualFold(b.Key, key) {
		return false
	}
	return modsEqual(b.Modifiers, mods)
}

func modsEqual(a, b []Modifier) bool {
	na, nb := normalizeMods(a), normalizeMods(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

func normalizeMods(mods []Modifier) []Modifier {
	seen := make(map[Modifier]struct{}, len(mods))
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		m = Modifier(strings.ToLower(string(m)))
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultBindings is the seed table. Table position doubles as resolution
// priority.
func DefaultBindings() []Binding {
	b := []Binding{
		newBinding(ActionPlayPause, "space"),
		newBinding(ActionSeekBackward, "left"),
		newBinding(ActionSeekForward, "right"),
		newBinding(ActionVolumeUp, "up"),
		newBinding(ActionVolumeDown, "down"),
		newBinding(ActionToggleFullscreen, "f", ModCtrl),
		newBinding(ActionToggleMute, "m"),
		newBinding(ActionPreviousFrame, ","),
		newBinding(ActionNextFrame, "."),
	}
	for d := 0; d <= 9; d++ {
		b = append(b, newBinding(ActionSeekToProgress, string(rune('0'+d))))
	}
	b = append(b,
		newBinding(ActionSlowerPlayback, "["),
		newBinding(ActionFasterPlayback, "]"),
		newBinding(ActionResetPlaybackSpeed, `\`),
		newBinding(ActionQuit, "q", ModCtrl),
		newBinding(ActionNewWindow, "n", ModCtrl),
		newBinding(ActionCloseWindow, "w", ModCtrl),
		newBinding(ActionToggleSubtitle, "c"),
		newBinding(ActionIncreaseSubtitleSize, "=", ModCtrl),
		newBinding(ActionDecreaseSubtitleSize, "-", ModCtrl),
	)
	return b
}
