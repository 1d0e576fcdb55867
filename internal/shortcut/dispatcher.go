package shortcut

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var ErrBindingNotFound = errors.New("binding not found")

// Dispatch is one resolved key press. Key travels along so handlers of
// multi-key actions (the digit row's seek-to-progress) know which key
// fired.
type Dispatch struct {
	Action Action
	Key    string
}

// Dispatcher resolves raw key events against the binding table. Each event
// dispatches at most one action; a consumed event must not propagate
// further, an unconsumed one must be left to the surrounding UI.
type Dispatcher struct {
	mu       sync.Mutex
	enabled  bool
	bindings []Binding
	out      chan Dispatch
}

func NewDispatcher(bindings []Binding, enabled bool) *Dispatcher {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Dispatcher{
		enabled:  enabled,
		bindings: bindings,
		out:      make(chan Dispatch, 32),
	}
}

// Dispatches is the typed action stream consumed by the orchestrator. The
// dispatcher never executes transport operations itself.
func (d *Dispatcher) Dispatches() <-chan Dispatch { return d.out }

// HandleKey scans bindings in table order and dispatches the first enabled
// exact match. The return value reports consumption: true means the event
// is handled and must not propagate. Disabled bindings are skipped; with
// the global flag off nothing is evaluated and every event propagates.
//
// Two enabled bindings on the same key+modifiers is a documented
// ambiguity, resolved deterministically by table order, never an error.
func (d *Dispatcher) HandleKey(key string, mods []Modifier) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled {
		return false
	}
	for i := range d.bindings {
		b := &d.bindings[i]
		if !b.Enabled {
			continue
		}
		if !b.matches(key, mods) {
			continue
		}
		select {
		case d.out <- Dispatch{Action: b.Action, Key: b.Key}:
		default:
			slog.Warn("dispatch channel full, dropping action", "action", b.Action)
		}
		return true
	}
	return false
}

func (d *Dispatcher) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

func (d *Dispatcher) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

// Bindings returns a copy of the table in resolution order.
func (d *Dispatcher) Bindings() []Binding {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Binding, len(d.bindings))
	copy(out, d.bindings)
	return out
}

// Update rebinds the first table entry with a matching action, keeping its
// table position. Actions bound more than once (the digit row) are edited
// per entry through Replace.
func (d *Dispatcher) Update(b Binding) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.bindings {
		if d.bindings[i].Action == b.Action {
			b.ID = d.bindings[i].ID
			d.bindings[i] = b
			return nil
		}
	}
	return ErrBindingNotFound
}

// Replace rebinds the table entry with the given id in place.
func (d *Dispatcher) Replace(id uuid.UUID, b Binding) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.bindings {
		if d.bindings[i].ID == id {
			b.ID = id
			d.bindings[i] = b
			return nil
		}
	}
	return ErrBindingNotFound
}

// Lookup returns the first binding for an action.
func (d *Dispatcher) Lookup(action Action) (Binding, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.bindings {
		if d.bindings[i].Action == action {
			return d.bindings[i], true
		}
	}
	return Binding{}, false
}

func (d *Dispatcher) ResetDefaults() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings = DefaultBindings()
}

// setTable swaps the whole table; used by the persistence layer on load.
func (d *Dispatcher) setTable(bindings []Binding) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings = bindings
}
