package layer

import (
	"errors"
	"sync"

	"github.com/mapyard/mapyard/internal/selection"
)

// Sentinel errors for the layer package.
var (
	// ErrLayerNotManaged is returned when activating a layer the manager
	// does not own.
	ErrLayerNotManaged = errors.New("layer is not managed by this manager")

	// ErrDuplicateLayer is returned when adding a layer twice.
	ErrDuplicateLayer = errors.New("layer is already managed")
)

// ActiveLayerListener is notified when the active layer changes.
type ActiveLayerListener interface {
	ActiveLayerChanged(change selection.LayerChange)
}

// Manager owns the ordered list of open data layers and tracks the active
// one. It satisfies selection.LayerSource.
//
// Listener callbacks run synchronously on the goroutine performing the
// transition, after the manager's own state is updated, so a listener
// querying ActiveLayer observes the post-transition state.
type Manager struct {
	mu        sync.RWMutex
	layers    []*DataLayer
	active    *DataLayer
	listeners []ActiveLayerListener
}

// NewManager creates an empty layer manager with no active layer.
func NewManager() *Manager {
	return &Manager{}
}

// AddLayer adds a layer to the manager. The layer does not become active;
// call SetActiveLayer for that.
func (m *Manager) AddLayer(l *DataLayer) error {
	if l == nil {
		return ErrLayerNotManaged
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.layers {
		if existing == l {
			return ErrDuplicateLayer
		}
	}
	m.layers = append(m.layers, l)
	return nil
}

// RemoveLayer removes a layer. Removing the active layer deactivates it
// first, so listeners observe a transition to no active layer.
func (m *Manager) RemoveLayer(l *DataLayer) error {
	if l == nil {
		return ErrLayerNotManaged
	}

	m.mu.Lock()
	idx := -1
	for i, existing := range m.layers {
		if existing == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return ErrLayerNotManaged
	}

	var change *selection.LayerChange
	var listeners []ActiveLayerListener
	if m.active == l {
		m.active = nil
		change = &selection.LayerChange{Previous: l}
		listeners = m.listeners
	}
	m.layers = append(m.layers[:idx:idx], m.layers[idx+1:]...)
	m.mu.Unlock()

	if change != nil {
		m.notify(listeners, *change)
	}
	return nil
}

// SetActiveLayer makes the given layer active and notifies listeners.
// Passing nil deactivates the current layer. Activating the already
// active layer is a no-op.
func (m *Manager) SetActiveLayer(l *DataLayer) error {
	m.mu.Lock()
	if l == m.active {
		m.mu.Unlock()
		return nil
	}
	if l != nil && !m.containsLocked(l) {
		m.mu.Unlock()
		return ErrLayerNotManaged
	}

	prev := m.active
	m.active = l
	listeners := m.listeners
	m.mu.Unlock()

	change := selection.LayerChange{}
	if prev != nil {
		change.Previous = prev
	}
	if l != nil {
		change.Current = l
	}
	m.notify(listeners, change)
	return nil
}

// ActiveLayer returns the active layer, or nil when none is active.
// It implements selection.LayerSource.
func (m *Manager) ActiveLayer() selection.Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.active == nil {
		return nil
	}
	return m.active
}

// ActiveDataLayer returns the active layer as its concrete type, or nil.
func (m *Manager) ActiveDataLayer() *DataLayer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Layers returns a copy of the managed layer list in order.
func (m *Manager) Layers() []*DataLayer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*DataLayer, len(m.layers))
	copy(out, m.layers)
	return out
}

// SubscribeActiveLayer registers a listener for active-layer transitions.
// Registration is idempotent.
func (m *Manager) SubscribeActiveLayer(l ActiveLayerListener) {
	if l == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.listeners {
		if existing == l {
			return
		}
	}

	next := make([]ActiveLayerListener, len(m.listeners), len(m.listeners)+1)
	copy(next, m.listeners)
	m.listeners = append(next, l)
}

// SubscribeActiveLayerAndFire registers a listener and, when a layer is
// currently active, immediately delivers a transition from no layer to
// the active one. Use this when the listener needs the current state
// rather than only future changes.
func (m *Manager) SubscribeActiveLayerAndFire(l ActiveLayerListener) {
	if l == nil {
		return
	}
	m.SubscribeActiveLayer(l)

	m.mu.RLock()
	active := m.active
	m.mu.RUnlock()

	if active != nil {
		l.ActiveLayerChanged(selection.LayerChange{Current: active})
	}
}

// UnsubscribeActiveLayer removes a listener. Removing an unregistered
// listener is a no-op.
func (m *Manager) UnsubscribeActiveLayer(l ActiveLayerListener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.listeners {
		if existing == l {
			next := make([]ActiveLayerListener, 0, len(m.listeners)-1)
			next = append(next, m.listeners[:i]...)
			next = append(next, m.listeners[i+1:]...)
			m.listeners = next
			return
		}
	}
}

// containsLocked reports whether the layer is managed. Caller holds m.mu.
func (m *Manager) containsLocked(l *DataLayer) bool {
	for _, existing := range m.layers {
		if existing == l {
			return true
		}
	}
	return false
}

// notify delivers a transition to a listener snapshot outside the lock.
func (m *Manager) notify(listeners []ActiveLayerListener, change selection.LayerChange) {
	for _, l := range listeners {
		l.ActiveLayerChanged(change)
	}
}
