package layer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mapyard/mapyard/internal/feature"
	"github.com/mapyard/mapyard/internal/selection"
)

// DataLayer is a single editable data layer. It stores the layer's
// current selection and a native selection-listener list.
//
// If you want to listen to selections on one specific layer regardless of
// which layer is active, subscribe here. To follow the selection of
// whichever layer is currently active, use the selection.Manager instead.
type DataLayer struct {
	id   string
	name string

	mu        sync.RWMutex
	selected  feature.Set
	listeners []selection.EventListener
}

// New creates an empty data layer with the given display name.
func New(name string) *DataLayer {
	return &DataLayer{
		id:   uuid.NewString(),
		name: name,
	}
}

// ID returns the layer's unique identifier.
func (l *DataLayer) ID() string { return l.id }

// Name returns the layer's display name.
func (l *DataLayer) Name() string { return l.name }

// CurrentSelection returns a snapshot of the layer's selection.
func (l *DataLayer) CurrentSelection() feature.Set {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.selected
}

// SubscribeSelection registers a native selection listener. Registration
// is idempotent.
func (l *DataLayer) SubscribeSelection(el selection.EventListener) {
	if el == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.listeners {
		if existing == el {
			return
		}
	}

	next := make([]selection.EventListener, len(l.listeners), len(l.listeners)+1)
	copy(next, l.listeners)
	l.listeners = append(next, el)
}

// UnsubscribeSelection removes a native selection listener. Removing an
// unregistered listener is a no-op.
func (l *DataLayer) UnsubscribeSelection(el selection.EventListener) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.listeners {
		if existing == el {
			next := make([]selection.EventListener, 0, len(l.listeners)-1)
			next = append(next, l.listeners[:i]...)
			next = append(next, l.listeners[i+1:]...)
			l.listeners = next
			return
		}
	}
}

// SetSelection replaces the layer's selection. No event fires when the
// new selection equals the current one.
func (l *DataLayer) SetSelection(sel feature.Set) {
	l.mu.Lock()
	old := l.selected
	if old.Equal(sel) {
		l.mu.Unlock()
		return
	}
	l.selected = sel
	listeners := l.listeners
	l.mu.Unlock()

	l.notify(listeners, selection.NewReplaceEvent(l, old, sel))
}

// Select adds features to the selection. Features already selected are
// ignored; no event fires when nothing changes.
func (l *DataLayer) Select(ids ...feature.ID) {
	l.mu.Lock()
	var added []feature.ID
	for _, id := range ids {
		if !l.selected.Contains(id) {
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		l.mu.Unlock()
		return
	}
	l.selected = l.selected.With(added...)
	sel := l.selected
	listeners := l.listeners
	l.mu.Unlock()

	l.notify(listeners, selection.NewAddEvent(l, sel, feature.NewSet(added...)))
}

// Deselect removes features from the selection. Features not selected are
// ignored; no event fires when nothing changes.
func (l *DataLayer) Deselect(ids ...feature.ID) {
	l.mu.Lock()
	var removed []feature.ID
	for _, id := range ids {
		if l.selected.Contains(id) {
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		l.mu.Unlock()
		return
	}
	l.selected = l.selected.Without(removed...)
	sel := l.selected
	listeners := l.listeners
	l.mu.Unlock()

	l.notify(listeners, selection.NewRemoveEvent(l, sel, feature.NewSet(removed...)))
}

// ClearSelection empties the selection. No event fires when it was
// already empty.
func (l *DataLayer) ClearSelection() {
	l.SetSelection(feature.EmptySet)
}

// notify delivers the event to a listener snapshot outside the lock, so
// listeners may subscribe, unsubscribe or mutate the selection again.
func (l *DataLayer) notify(listeners []selection.EventListener, e selection.Event) {
	for _, el := range listeners {
		el.SelectionEventFired(e)
	}
}
