package session

import (
	"log/slog"
	"sync"

	"github.com/vplay/vplay/internal/media"
)

const (
	DefaultSeekStep   = 15.0
	DefaultVolumeStep = 0.1
)

// Machine owns one active engine handle and converts engine events into a
// typed session state. Commands are clamp-don't-reject: out-of-range
// numeric input is normalized, never surfaced as a failure. Engine errors
// are terminal for the session and show up in the snapshot; they are not
// retried.
type Machine struct {
	engine Engine

	seekStep   float64
	volumeStep float64

	mu          sync.Mutex
	state       State
	handle      Handle
	item        media.Item
	hasItem     bool
	current     float64
	duration    float64
	buffered    float64
	rate        float64
	volume      float64
	muted       bool
	fullscreen  bool
	errMsg      string
	pendingSeek float64
}

func NewMachine(engine Engine, seekStep, volumeStep float64) *Machine {
	if seekStep <= 0 {
		seekStep = DefaultSeekStep
	}
	if volumeStep <= 0 {
		volumeStep = DefaultVolumeStep
	}
	return &Machine{
		engine:     engine,
		seekStep:   seekStep,
		volumeStep: volumeStep,
		state:      StateIdle,
		rate:       DefaultRate,
		volume:     1.0,
	}
}

// Load starts a fresh session for the item, requesting playback from
// startAt seconds once the engine reports ready. An unreachable source
// lands the machine in StateError; Load never reports failure to the
// caller directly, the caller observes state.
//
// There is deliberately no load timeout: an engine that never reports
// ready or error leaves the session in StateLoading.
func (m *Machine) Load(item media.Item, startAt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != 0 {
		// discard interest in the previous session's future events
		m.engine.Release(m.handle)
		m.handle = 0
	}

	m.item = item
	m.hasItem = true
	m.current = 0
	m.duration = 0
	m.buffered = 0
	m.errMsg = ""
	if startAt < 0 {
		startAt = 0
	}
	m.pendingSeek = startAt
	m.state = StateLoading

	h, err := m.engine.Load(item.Locator)
	if err != nil {
		slog.Warn("engine load failed", "locator", item.Locator, "err", err)
		m.state = StateError
		m.errMsg = err.Error()
		return
	}
	m.handle = h
	m.engine.SetRate(h, m.rate)
	m.engine.SetVolume(h, m.volume)
}

// Apply folds one engine event into the session state and returns the
// resulting state. Events for a stale handle are ignored (applied=false).
// Events are applied in arrival order, no reordering or coalescing.
func (m *Machine) Apply(ev Event) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == 0 || ev.Handle != m.handle {
		return m.state, false
	}

	switch ev.Kind {
	case EventStateChanged:
		m.applyEngineStateLocked(ev)
	case EventTimeUpdated:
		m.current = ev.CurrentSec
		if ev.TotalSec > 0 {
			m.duration = ev.TotalSec
		}
		m.clampCurrentLocked()
	case EventFinished:
		if ev.Err != nil {
			if !m.state.Terminal() {
				m.state = StateError
				m.errMsg = ev.Err.Error()
			}
		} else if m.state == StatePlaying || m.state == StatePaused {
			m.current = m.duration
			m.state = StateFinished
		}
	case EventBufferUpdated:
		if m.duration > 0 {
			frac := (m.current + ev.ConsumedTimeSec) / m.duration
			if frac > 1 {
				frac = 1
			}
			if frac < 0 {
				frac = 0
			}
			m.buffered = frac
		}
	}
	return m.state, true
}

func (m *Machine) applyEngineStateLocked(ev Event) {
	switch ev.EngineState {
	case EngineReady:
		if m.state != StateLoading {
			return
		}
		m.state = StateReady
		m.errMsg = ""
		if ev.TotalSec > 0 {
			m.duration = ev.TotalSec
		}
		if m.pendingSeek > 0 && m.duration > 0 {
			target := m.pendingSeek
			if target > m.duration {
				target = m.duration
			}
			m.current = target
			m.engine.Seek(m.handle, target, true)
		}
		m.pendingSeek = 0
	case EnginePlaying, EngineBuffering:
		if m.state == StateReady || m.state == StatePaused || m.state == StatePlaying {
			m.state = StatePlaying
		}
	case EnginePaused:
		if m.state == StatePlaying {
			m.state = StatePaused
		}
	case EngineFailed:
		if !m.state.Terminal() && m.state != StateIdle {
			m.state = StateError
			if ev.Err != nil {
				m.errMsg = ev.Err.Error()
			}
		}
	}
}

func (m *Machine) clampCurrentLocked() {
	if m.current < 0 {
		m.current = 0
	}
	if m.duration > 0 && m.current > m.duration {
		m.current = m.duration
	}
}

func (m *Machine) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady && m.state != StatePaused {
		return
	}
	m.state = StatePlaying
	m.engine.Play(m.handle)
}

func (m *Machine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StatePlaying {
		return
	}
	m.state = StatePaused
	m.engine.Pause(m.handle)
}

func (m *Machine) TogglePlayPause() {
	m.mu.Lock()
	playing := m.state == StatePlaying
	m.mu.Unlock()
	if playing {
		m.Pause()
	} else {
		m.Play()
	}
}

// Stop releases the engine handle and returns to StateIdle. Legal from any
// state and idempotent. Volume survives a stop; rate and flags reset.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != 0 {
		m.engine.Release(m.handle)
		m.handle = 0
	}
	m.item = media.Item{}
	m.hasItem = false
	m.current = 0
	m.duration = 0
	m.buffered = 0
	m.rate = DefaultRate
	m.muted = false
	m.fullscreen = false
	m.errMsg = ""
	m.pendingSeek = 0
	m.state = StateIdle
}

// Seek requests an absolute position, clamped into [0, duration]. A
// session with unknown duration ignores the request. Seeks always ask the
// engine to resume playback once the seek completes.
func (m *Machine) Seek(target float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekLocked(target)
}

func (m *Machine) seekLocked(target float64) {
	if m.handle == 0 || m.state.Terminal() || m.duration <= 0 {
		return
	}
	if target < 0 {
		target = 0
	}
	if target > m.duration {
		target = m.duration
	}
	m.current = target
	m.engine.Seek(m.handle, target, true)
}

// SeekRelative adds delta seconds to the current position.
func (m *Machine) SeekRelative(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekLocked(m.current + delta)
}

func (m *Machine) SeekForward()  { m.SeekRelative(m.seekStep) }
func (m *Machine) SeekBackward() { m.SeekRelative(-m.seekStep) }

// SeekToFraction maps f in [0,1] onto the duration.
func (m *Machine) SeekToFraction(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekLocked(f * m.duration)
}

func (m *Machine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
	if m.handle != 0 {
		m.engine.SetVolume(m.handle, v)
	}
}

func (m *Machine) VolumeUp()   { m.stepVolume(m.volumeStep) }
func (m *Machine) VolumeDown() { m.stepVolume(-m.volumeStep) }

func (m *Machine) stepVolume(delta float64) {
	m.mu.Lock()
	v := m.volume + delta
	m.mu.Unlock()
	m.SetVolume(v)
}

// SetRate snaps the requested rate onto the fixed ladder.
func (m *Machine) SetRate(r float64) {
	r = nearestRate(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = r
	if m.handle != 0 {
		m.engine.SetRate(m.handle, r)
	}
}

// IncreaseRate steps one position up the ladder; no wraparound at the top.
func (m *Machine) IncreaseRate() {
	m.mu.Lock()
	i := rateIndex(m.rate)
	if i >= 0 && i < len(Rates)-1 {
		i++
	}
	r := Rates[max(i, 0)]
	m.mu.Unlock()
	m.SetRate(r)
}

// DecreaseRate steps one position down; no wraparound at the bottom.
func (m *Machine) DecreaseRate() {
	m.mu.Lock()
	i := rateIndex(m.rate)
	if i > 0 {
		i--
	}
	r := Rates[max(i, 0)]
	m.mu.Unlock()
	m.SetRate(r)
}

func (m *Machine) ResetRate() { m.SetRate(DefaultRate) }

func (m *Machine) ToggleMute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
}

func (m *Machine) ToggleFullscreen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullscreen = !m.fullscreen
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentItem returns the item this session plays, if any. The machine
// holds a copy, not ownership; playlist membership stays with the caller.
func (m *Machine) CurrentItem() (media.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item, m.hasItem
}

// Position returns current time and duration in seconds.
func (m *Machine) Position() (current, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.duration
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		State:       m.state,
		CurrentSec:  m.current,
		DurationSec: m.duration,
		Buffered:    m.buffered,
		Rate:        m.rate,
		Volume:      m.volume,
		Muted:       m.muted,
		Fullscreen:  m.fullscreen,
		Error:       m.errMsg,
	}
	if m.hasItem {
		snap.ItemID = m.item.ID
		snap.Title = m.item.Title
		snap.Locator = m.item.Locator
	}
	return snap
}
