package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/history"
	"github.com/vplay/vplay/internal/media"
	"github.com/vplay/vplay/internal/metrics"
	"github.com/vplay/vplay/internal/playlist"
	"github.com/vplay/vplay/internal/session"
	"github.com/vplay/vplay/internal/settings"
	"github.com/vplay/vplay/internal/shortcut"
)

const positionSaveInterval = 5 * time.Second

// UINotice is a dispatched action with no playback meaning, forwarded
// unresolved to the UI layer.
type UINotice struct {
	Action shortcut.Action `json:"action"`
	Key    string          `json:"key"`
}

// Orchestrator glues the session machine, the navigation engine and the
// shortcut dispatcher. Run is the single owner loop: every engine event is
// re-marshaled through it before touching session state, and dispatched
// shortcut actions resolve to machine calls here.
type Orchestrator struct {
	machine   *session.Machine
	engine    session.Engine
	playlists *playlist.Service
	shortcuts *shortcut.Dispatcher
	settings  *settings.Service
	history   *history.Service

	ui chan UINotice

	mu         sync.Mutex
	playlistID uuid.UUID // playlist the active session came from
	lastSave   time.Time
}

func New(
	machine *session.Machine,
	engine session.Engine,
	playlists *playlist.Service,
	shortcuts *shortcut.Dispatcher,
	sets *settings.Service,
	hist *history.Service,
) *Orchestrator {
	return &Orchestrator{
		machine:   machine,
		engine:    engine,
		playlists: playlists,
		shortcuts: shortcuts,
		settings:  sets,
		history:   hist,
		ui:        make(chan UINotice, 16),
	}
}

// UINotices delivers actions the orchestrator cannot resolve to transport
// commands.
func (o *Orchestrator) UINotices() <-chan UINotice { return o.ui }

// Run consumes engine events and shortcut dispatches until the context
// ends. It is the only caller of Apply, so events reach session state in
// arrival order.
func (o *Orchestrator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-o.engine.Events():
			o.handleEngineEvent(ctx, ev)
		case d := <-o.shortcuts.Dispatches():
			o.handleDispatch(d)
		}
	}
}

func (o *Orchestrator) handleEngineEvent(ctx context.Context, ev session.Event) {
	prev := o.machine.State()
	st, applied := o.machine.Apply(ev)
	if !applied {
		// stale handle, a discarded session's leftover event
		return
	}

	switch {
	case ev.Kind == session.EventStateChanged && ev.EngineState == session.EngineReady:
		o.saveDuration(ctx)
	case ev.Kind == session.EventTimeUpdated:
		o.savePositionThrottled(ctx)
	}

	if st == prev {
		return
	}
	switch st {
	case session.StateFinished:
		o.onFinished(ctx)
	case session.StateError:
		metrics.SessionErrors.Inc()
		slog.Error("session error", "snapshot", o.machine.Snapshot().Error)
	}
}

// onFinished decides what plays next. Repeat-one restarts the same item
// from zero without consulting navigation; otherwise the navigation engine
// picks, and an exhausted playlist leaves the session in StateFinished.
func (o *Orchestrator) onFinished(ctx context.Context) {
	metrics.SessionsFinished.Inc()

	item, ok := o.machine.CurrentItem()
	if !ok {
		return
	}
	_, dur := o.machine.Position()
	o.history.Record(ctx, item.ID, item.Title, item.Locator, dur, dur)

	o.mu.Lock()
	plID := o.playlistID
	o.mu.Unlock()
	if plID == uuid.Nil {
		return
	}
	pl, found := o.playlists.Get(plID)
	if !found {
		return
	}

	// a finished item restarts from the top on its next visit
	if err := o.playlists.SaveItemPosition(ctx, plID, item.ID, 0); err != nil {
		slog.Debug("finished item not in playlist anymore", "item", item.ID)
	}

	if pl.RepeatMode == playlist.RepeatOne {
		o.startSession(item, 0)
		return
	}
	if !o.settings.Get().AutoPlayNext {
		return
	}

	next, ok := playlist.Next(&pl, item.ID)
	if !ok {
		slog.Info("playlist exhausted", "playlist", pl.Name, "watched", media.Clock(dur))
		return
	}
	metrics.AutoAdvances.Inc()
	o.loadFromPlaylist(plID, next)
}

func (o *Orchestrator) startSession(item media.Item, startAt float64) {
	o.machine.Load(item, startAt)
	metrics.SessionsStarted.Inc()
}

func (o *Orchestrator) loadFromPlaylist(plID uuid.UUID, item media.Item) {
	startAt := 0.0
	if o.settings.Get().RememberPosition {
		startAt = item.PositionSec
	}
	o.mu.Lock()
	o.playlistID = plID
	o.mu.Unlock()
	o.startSession(item, startAt)
}

func (o *Orchestrator) handleDispatch(d shortcut.Dispatch) {
	metrics.ShortcutsDispatched.WithLabelValues(string(d.Action)).Inc()

	switch d.Action {
	case shortcut.ActionPlayPause:
		o.machine.TogglePlayPause()
	case shortcut.ActionSeekForward:
		o.machine.SeekForward()
	case shortcut.ActionSeekBackward:
		o.machine.SeekBackward()
	case shortcut.ActionVolumeUp:
		o.machine.VolumeUp()
	case shortcut.ActionVolumeDown:
		o.machine.VolumeDown()
	case shortcut.ActionToggleFullscreen:
		o.machine.ToggleFullscreen()
	case shortcut.ActionToggleMute:
		o.machine.ToggleMute()
	case shortcut.ActionSlowerPlayback:
		o.machine.DecreaseRate()
	case shortcut.ActionFasterPlayback:
		o.machine.IncreaseRate()
	case shortcut.ActionResetPlaybackSpeed:
		o.machine.ResetRate()
	case shortcut.ActionSeekToProgress:
		if len(d.Key) == 1 && d.Key[0] >= '0' && d.Key[0] <= '9' {
			o.machine.SeekToFraction(float64(d.Key[0]-'0') / 10)
		}
	default:
		// no playback meaning here, hand it to the UI layer
		select {
		case o.ui <- UINotice{Action: d.Action, Key: d.Key}:
		default:
			slog.Warn("ui notice dropped", "action", d.Action)
		}
	}
}

// SelectItem bypasses navigation: the user picked an item. Saved position
// is honored when position memory is on.
func (o *Orchestrator) SelectItem(ctx context.Context, plID, itemID uuid.UUID) error {
	pl, found := o.playlists.Get(plID)
	if !found {
		return playlist.ErrNotFound
	}
	item, ok := pl.Item(itemID)
	if !ok {
		return playlist.ErrItemNotFound
	}
	if err := o.playlists.SetCurrent(ctx, plID); err != nil {
		return err
	}
	o.loadFromPlaylist(plID, item)
	return nil
}

// Next advances to the following item on user request. Returns false when
// navigation is exhausted, which is a normal empty result.
func (o *Orchestrator) Next(ctx context.Context) bool {
	return o.step(ctx, playlist.Next)
}

// Previous steps back to the preceding item.
func (o *Orchestrator) Previous(ctx context.Context) bool {
	return o.step(ctx, playlist.Previous)
}

func (o *Orchestrator) step(ctx context.Context, pick func(*playlist.Playlist, uuid.UUID) (media.Item, bool)) bool {
	o.savePosition(ctx)

	o.mu.Lock()
	plID := o.playlistID
	o.mu.Unlock()

	var pl playlist.Playlist
	var found bool
	if plID != uuid.Nil {
		pl, found = o.playlists.Get(plID)
	}
	if !found {
		pl, found = o.playlists.Current()
		if !found {
			return false
		}
	}

	currentID := uuid.Nil
	if item, ok := o.machine.CurrentItem(); ok {
		currentID = item.ID
	}
	item, ok := pick(&pl, currentID)
	if !ok {
		return false
	}
	o.loadFromPlaylist(pl.ID, item)
	return true
}

// Stop saves the watch position, records the partial watch and resets the
// session.
func (o *Orchestrator) Stop(ctx context.Context) {
	o.savePosition(ctx)
	if item, ok := o.machine.CurrentItem(); ok {
		cur, dur := o.machine.Position()
		if cur > 0 {
			o.history.Record(ctx, item.ID, item.Title, item.Locator, cur, dur)
		}
	}
	o.machine.Stop()
}

// Pause saves position eagerly so a crash loses at most the throttle
// window.
func (o *Orchestrator) Pause(ctx context.Context) {
	o.machine.Pause()
	o.savePosition(ctx)
}

func (o *Orchestrator) Snapshot() session.Snapshot { return o.machine.Snapshot() }

func (o *Orchestrator) Machine() *session.Machine { return o.machine }

func (o *Orchestrator) saveDuration(ctx context.Context) {
	o.mu.Lock()
	plID := o.playlistID
	o.mu.Unlock()
	if plID == uuid.Nil {
		return
	}
	item, ok := o.machine.CurrentItem()
	if !ok {
		return
	}
	_, dur := o.machine.Position()
	if dur <= 0 {
		return
	}
	if err := o.playlists.SaveItemDuration(ctx, plID, item.ID, dur); err != nil {
		slog.Debug("duration save skipped", "item", item.ID, "err", err)
	}
}

func (o *Orchestrator) savePositionThrottled(ctx context.Context) {
	o.mu.Lock()
	due := time.Since(o.lastSave) >= positionSaveInterval
	if due {
		o.lastSave = time.Now()
	}
	o.mu.Unlock()
	if due {
		o.savePosition(ctx)
	}
}

func (o *Orchestrator) savePosition(ctx context.Context) {
	if !o.settings.Get().RememberPosition {
		return
	}
	st := o.machine.State()
	if st != session.StatePlaying && st != session.StatePaused {
		return
	}
	o.mu.Lock()
	plID := o.playlistID
	o.mu.Unlock()
	if plID == uuid.Nil {
		return
	}
	item, ok := o.machine.CurrentItem()
	if !ok {
		return
	}
	cur, _ := o.machine.Position()
	if err := o.playlists.SaveItemPosition(ctx, plID, item.ID, cur); err != nil {
		slog.Debug("position save skipped", "item", item.ID, "err", err)
	}
}
