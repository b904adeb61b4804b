package selection

import (
	"sync"

	"github.com/mapyard/mapyard/internal/feature"
)

// Manager is the selection-event manager facade. It composes the listener
// registry, the dispatch engine and the active-layer switch handling.
//
// A Manager subscribes itself to the active layer's native selection
// channel (it implements EventListener) and holds at most one such
// subscription at a time. The application creates one Manager at startup
// and registers it with the layer manager's active-layer notifications.
type Manager struct {
	source LayerSource
	reg    *registry
	engine *engine

	// transMu serializes active-layer transitions so that the deactivation
	// of the old layer is fully dispatched before the activation of the
	// new one begins.
	transMu sync.Mutex
	active  Layer
}

// Option configures a Manager.
type Option func(*Manager)

// WithPanicHandler sets the handler invoked when a listener panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.engine.panicHandler = h
		}
	}
}

// NewManager creates a selection-event manager. It immediately queries the
// source for the active layer and, if one exists, subscribes to it and
// synthesizes the activation event, so listeners registered right after
// construction observe a consistent initial state.
func NewManager(source LayerSource, tasks TaskQueue, opts ...Option) *Manager {
	reg := newRegistry()
	m := &Manager{
		source: source,
		reg:    reg,
		engine: newEngine(reg, tasks, nil),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.transMu.Lock()
	m.applyChange(nil, source.ActiveLayer())
	m.transMu.Unlock()

	return m
}

// AddListener registers a legacy selection listener under the given fire
// mode. Registration is idempotent: adding the same listener twice under
// the same mode keeps a single entry.
//
// It is preferred to add an EventListener via AddEventListener - that
// listener receives more information about the event.
func (m *Manager) AddListener(l SelectionListener, mode FireMode) error {
	if l == nil {
		return ErrNilListener
	}
	return m.add(listenerEntry{legacy: l}, mode)
}

// AddEventListener registers a full-event listener under the given fire
// mode. Registration is idempotent.
func (m *Manager) AddEventListener(l EventListener, mode FireMode) error {
	if l == nil {
		return ErrNilListener
	}
	return m.add(listenerEntry{full: l}, mode)
}

func (m *Manager) add(entry listenerEntry, mode FireMode) error {
	switch mode {
	case FireImmediate, FireUIThreadConsolidated:
		m.reg.add(mode, entry)
		return nil
	default:
		return ErrUnsupportedFireMode
	}
}

// RemoveListener unregisters a legacy selection listener from both fire
// modes. Removing an unregistered listener is a no-op.
func (m *Manager) RemoveListener(l SelectionListener) {
	if l == nil {
		return
	}
	m.reg.remove(listenerEntry{legacy: l})
}

// RemoveEventListener unregisters a full-event listener from both fire
// modes. Removing an unregistered listener is a no-op.
func (m *Manager) RemoveEventListener(l EventListener) {
	if l == nil {
		return
	}
	m.reg.remove(listenerEntry{full: l})
}

// ActiveLayerChanged is the entry point for active-layer notifications
// from the layer manager. The old layer's deactivation is synthesized and
// dispatched before the new layer's activation, so listeners see the
// switch as two ordinary selection replacements:
//
//	ReplaceEvent{old layer, selection -> empty}
//	ReplaceEvent{new layer, empty -> selection}
//
// Relying on this allows components to not have to monitor layer changes.
func (m *Manager) ActiveLayerChanged(change LayerChange) {
	m.transMu.Lock()
	defer m.transMu.Unlock()
	m.applyChange(change.Previous, change.Current)
}

// SelectionEventFired is the entry point for the active layer's native
// selection channel. It may be called from any goroutine.
func (m *Manager) SelectionEventFired(e Event) {
	m.engine.dispatch(e)
}

// ResetState restores the manager to its post-construction state: both
// registries are emptied and the initial activation synthesis is re-run
// against the source's current active layer.
//
// Only to be used during unit tests. Do not use it in application code.
func (m *Manager) ResetState() {
	m.transMu.Lock()
	defer m.transMu.Unlock()

	if m.active != nil {
		m.active.UnsubscribeSelection(m)
		m.active = nil
	}
	m.reg.clear()
	m.applyChange(nil, m.source.ActiveLayer())
}

// applyChange performs one transition of the layer-switch state machine.
// Caller must hold transMu.
func (m *Manager) applyChange(prev, cur Layer) {
	if prev != nil {
		// Fake a selection removal. The old layer's selection snapshot is
		// taken before unsubscribing so the event carries the state the
		// listeners last observed.
		m.engine.dispatch(NewReplaceEvent(prev, prev.CurrentSelection(), feature.EmptySet))
		prev.UnsubscribeSelection(m)
	}
	if cur != nil {
		cur.SubscribeSelection(m)
		// Fake a selection add for the newly active layer.
		m.engine.dispatch(NewReplaceEvent(cur, feature.EmptySet, cur.CurrentSelection()))
	}
	m.active = cur
}

// ListenerCount returns the number of listeners registered under the
// given fire mode.
func (m *Manager) ListenerCount(mode FireMode) int {
	return m.reg.count(mode)
}
