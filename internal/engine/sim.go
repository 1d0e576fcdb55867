package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/vplay/vplay/internal/session"
)

const tickInterval = 500 * time.Millisecond

// Sim is a headless media engine: it honors the session.Engine contract
// with wall-clock timers instead of a decode pipeline, so the daemon can
// run without a native engine attached. Local locators must exist on disk;
// anything else is treated as reachable.
type Sim struct {
	defaultDuration float64
	events          chan session.Event

	mu     sync.Mutex
	nextID session.Handle
	active map[session.Handle]*simPlayback
}

type simPlayback struct {
	cancel context.CancelFunc

	mu       sync.Mutex
	playing  bool
	pos      float64
	duration float64
	rate     float64
}

func NewSim(defaultDurationSec float64) *Sim {
	if defaultDurationSec <= 0 {
		defaultDurationSec = 60
	}
	return &Sim{
		defaultDuration: defaultDurationSec,
		events:          make(chan session.Event, 64),
		active:          make(map[session.Handle]*simPlayback),
	}
}

func (s *Sim) Events() <-chan session.Event { return s.events }

func (s *Sim) Load(locator string) (session.Handle, error) {
	if !strings.Contains(locator, "://") {
		if _, err := os.Stat(locator); err != nil {
			return 0, fmt.Errorf("source unreachable: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	pb := &simPlayback{
		cancel:   cancel,
		duration: s.defaultDuration,
		rate:     1.0,
	}

	s.mu.Lock()
	s.nextID++
	h := s.nextID
	s.active[h] = pb
	s.mu.Unlock()

	go s.run(ctx, h, pb)
	return h, nil
}

// run is the playback clock: announce ready, then advance the position on
// a fixed tick while playing, and report natural end once the position
// passes the duration.
func (s *Sim) run(ctx context.Context, h session.Handle, pb *simPlayback) {
	// small preparation delay before ready, like a real pipeline probe
	select {
	case <-ctx.Done():
		return
	case <-time.After(50 * time.Millisecond):
	}

	pb.mu.Lock()
	total := pb.duration
	pb.mu.Unlock()
	s.emit(session.Event{Handle: h, Kind: session.EventStateChanged, EngineState: session.EngineReady, TotalSec: total})

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pb.mu.Lock()
		if !pb.playing {
			pb.mu.Unlock()
			continue
		}
		pb.pos += tickInterval.Seconds() * pb.rate
		pos, dur := pb.pos, pb.duration
		done := pos >= dur
		if done {
			pb.pos = dur
			pb.playing = false
		}
		pb.mu.Unlock()

		if done {
			s.emit(session.Event{Handle: h, Kind: session.EventTimeUpdated, CurrentSec: dur, TotalSec: dur})
			s.emit(session.Event{Handle: h, Kind: session.EventFinished})
			return
		}
		s.emit(session.Event{Handle: h, Kind: session.EventTimeUpdated, CurrentSec: pos, TotalSec: dur})
	}
}

func (s *Sim) emit(ev session.Event) {
	select {
	case s.events <- ev:
	default:
		slog.Debug("sim engine event dropped, consumer lagging", "kind", ev.Kind)
	}
}

func (s *Sim) lookup(h session.Handle) *simPlayback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[h]
}

func (s *Sim) Play(h session.Handle) {
	pb := s.lookup(h)
	if pb == nil {
		return
	}
	pb.mu.Lock()
	pb.playing = true
	pb.mu.Unlock()
	s.emit(session.Event{Handle: h, Kind: session.EventStateChanged, EngineState: session.EnginePlaying})
}

func (s *Sim) Pause(h session.Handle) {
	pb := s.lookup(h)
	if pb == nil {
		return
	}
	pb.mu.Lock()
	pb.playing = false
	pb.mu.Unlock()
	s.emit(session.Event{Handle: h, Kind: session.EventStateChanged, EngineState: session.EnginePaused})
}

func (s *Sim) Seek(h session.Handle, seconds float64, autoPlayAfter bool) {
	pb := s.lookup(h)
	if pb == nil {
		return
	}
	pb.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > pb.duration {
		seconds = pb.duration
	}
	pb.pos = seconds
	if autoPlayAfter {
		pb.playing = true
	}
	dur := pb.duration
	pb.mu.Unlock()

	s.emit(session.Event{Handle: h, Kind: session.EventTimeUpdated, CurrentSec: seconds, TotalSec: dur})
	if autoPlayAfter {
		s.emit(session.Event{Handle: h, Kind: session.EventStateChanged, EngineState: session.EnginePlaying})
	}
}

func (s *Sim) SetRate(h session.Handle, rate float64) {
	pb := s.lookup(h)
	if pb == nil {
		return
	}
	pb.mu.Lock()
	if rate > 0 {
		pb.rate = rate
	}
	pb.mu.Unlock()
}

func (s *Sim) SetVolume(h session.Handle, volume float64) {
	// volume has no effect on the simulated clock
}

func (s *Sim) Release(h session.Handle) {
	s.mu.Lock()
	pb := s.active[h]
	delete(s.active, h)
	s.mu.Unlock()
	if pb != nil {
		pb.cancel()
	}
}
