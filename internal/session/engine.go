package session

// Handle identifies one in-flight playback instance inside the media
// engine. Events tagged with a handle other than the machine's active one
// are stale and get discarded.
type Handle uint64

// EngineState mirrors the coarse states an engine reports through
// stateChanged events.
type EngineState int

const (
	EnginePreparing EngineState = iota
	EngineReady
	EngineBuffering
	EnginePlaying
	EnginePaused
	EngineFailed
)

func (s EngineState) String() string {
	switch s {
	case EnginePreparing:
		return "preparing"
	case EngineReady:
		return "ready"
	case EngineBuffering:
		return "buffering"
	case EnginePlaying:
		return "playing"
	case EnginePaused:
		return "paused"
	case EngineFailed:
		return "failed"
	}
	return "unknown"
}

type EventKind int

const (
	EventStateChanged EventKind = iota
	EventTimeUpdated
	EventFinished
	EventBufferUpdated
)

// Event is one asynchronous notification from the engine. Events are
// applied strictly in arrival order; duplicate time updates simply
// overwrite the previous current time.
type Event struct {
	Handle Handle
	Kind   EventKind

	EngineState EngineState // EventStateChanged
	Err         error       // EventFinished (nil = natural end), EngineFailed

	CurrentSec float64 // EventTimeUpdated
	TotalSec   float64 // EventTimeUpdated, and duration on EngineReady

	BufferedCount   int     // EventBufferUpdated
	ConsumedTimeSec float64 // EventBufferUpdated
}

// Engine is the opaque native media pipeline. Load and Seek are
// fire-and-forget: the machine advances only on the corresponding events.
// Implementations deliver events from their own goroutines; the
// orchestrator re-marshals them onto the single owner loop.
type Engine interface {
	Load(locator string) (Handle, error)
	Play(h Handle)
	Pause(h Handle)
	Seek(h Handle, seconds float64, autoPlayAfter bool)
	SetRate(h Handle, rate float64)
	SetVolume(h Handle, volume float64)
	Release(h Handle)
	Events() <-chan Event
}
