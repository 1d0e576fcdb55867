package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplay/vplay/internal/session"
)

func tempMedia(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func waitEvent(t *testing.T, s *Sim, want session.EventKind) session.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if ev.Kind == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %d", want)
		}
	}
}

func TestLoadMissingLocalFile(t *testing.T) {
	s := NewSim(1)

	_, err := s.Load(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestLoadRemoteLocatorSkipsStat(t *testing.T) {
	s := NewSim(1)

	h, err := s.Load("https://example.com/stream.m3u8")
	require.NoError(t, err)
	defer s.Release(h)

	ev := waitEvent(t, s, session.EventStateChanged)
	assert.Equal(t, session.EngineReady, ev.EngineState)
	assert.Equal(t, 1.0, ev.TotalSec)
}

func TestPlaybackRunsToFinish(t *testing.T) {
	s := NewSim(0.5)

	h, err := s.Load(tempMedia(t))
	require.NoError(t, err)
	defer s.Release(h)

	waitEvent(t, s, session.EventStateChanged)
	s.Play(h)

	ev := waitEvent(t, s, session.EventFinished)
	assert.Equal(t, h, ev.Handle)
	assert.NoError(t, ev.Err)
}

func TestSeekClampsAndResumes(t *testing.T) {
	s := NewSim(100)

	h, err := s.Load(tempMedia(t))
	require.NoError(t, err)
	defer s.Release(h)
	waitEvent(t, s, session.EventStateChanged)

	s.Seek(h, 500, true)

	ev := waitEvent(t, s, session.EventTimeUpdated)
	assert.Equal(t, 100.0, ev.CurrentSec)

	ev = waitEvent(t, s, session.EventStateChanged)
	assert.Equal(t, session.EnginePlaying, ev.EngineState)
}

func TestPauseStopsTheClock(t *testing.T) {
	s := NewSim(100)

	h, err := s.Load(tempMedia(t))
	require.NoError(t, err)
	defer s.Release(h)
	waitEvent(t, s, session.EventStateChanged)

	s.Play(h)
	s.Pause(h)

	ev := waitEvent(t, s, session.EventStateChanged)
	if ev.EngineState == session.EnginePlaying {
		ev = waitEvent(t, s, session.EventStateChanged)
	}
	assert.Equal(t, session.EnginePaused, ev.EngineState)
}

func TestReleaseUnknownHandleIsNoop(t *testing.T) {
	s := NewSim(1)
	s.Release(session.Handle(99))
	s.Play(session.Handle(99))
	s.Pause(session.Handle(99))
	s.Seek(session.Handle(99), 1, false)

	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event %v for unknown handle", ev)
	default:
	}
}
