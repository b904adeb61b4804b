package selection

import "github.com/mapyard/mapyard/internal/feature"

// Layer is the contract the manager requires of a data layer. A layer
// stores the current selection and lets the manager subscribe to its
// native selection-change channel.
type Layer interface {
	// CurrentSelection returns a snapshot of the layer's selection.
	CurrentSelection() feature.Set

	// SubscribeSelection registers a listener on the layer's native
	// selection channel.
	SubscribeSelection(EventListener)

	// UnsubscribeSelection removes a previously registered listener.
	UnsubscribeSelection(EventListener)
}

// LayerChange describes an active-layer transition. Either field may be
// nil: Previous is nil when no layer was active before, Current is nil
// when the transition deactivates the last layer.
type LayerChange struct {
	Previous Layer
	Current  Layer
}

// LayerSource provides the currently active layer. The manager queries it
// at construction and on ResetState so that a late-constructed manager
// still observes the correct initial selection.
type LayerSource interface {
	ActiveLayer() Layer
}

// TaskQueue is the contract the manager requires of the UI runtime:
// enqueue a function for later, in-order, single-threaded execution.
type TaskQueue interface {
	Post(fn func())
}

// Event is a selection change on a layer. Selection always reflects the
// state after the change.
type Event interface {
	// Layer returns the layer the change happened on.
	Layer() Layer

	// Selection returns the selection after the change.
	Selection() feature.Set
}

// ReplaceEvent reports the selection being replaced wholesale. The manager
// synthesizes ReplaceEvents for active-layer transitions: deactivation
// replaces the old layer's selection with the empty set, activation
// replaces the empty set with the new layer's selection.
type ReplaceEvent struct {
	layer Layer
	old   feature.Set
	sel   feature.Set
}

// NewReplaceEvent creates a replace event for the given layer.
func NewReplaceEvent(l Layer, old, sel feature.Set) *ReplaceEvent {
	return &ReplaceEvent{layer: l, old: old, sel: sel}
}

// Layer returns the layer the change happened on.
func (e *ReplaceEvent) Layer() Layer { return e.layer }

// Selection returns the selection after the replacement.
func (e *ReplaceEvent) Selection() feature.Set { return e.sel }

// OldSelection returns the selection before the replacement.
func (e *ReplaceEvent) OldSelection() feature.Set { return e.old }

// AddEvent reports features being added to the selection.
type AddEvent struct {
	layer Layer
	sel   feature.Set
	added feature.Set
}

// NewAddEvent creates an add event. sel is the selection after the change,
// added the features that joined it.
func NewAddEvent(l Layer, sel, added feature.Set) *AddEvent {
	return &AddEvent{layer: l, sel: sel, added: added}
}

// Layer returns the layer the change happened on.
func (e *AddEvent) Layer() Layer { return e.layer }

// Selection returns the selection after the addition.
func (e *AddEvent) Selection() feature.Set { return e.sel }

// Added returns the features that were added.
func (e *AddEvent) Added() feature.Set { return e.added }

// RemoveEvent reports features being removed from the selection.
type RemoveEvent struct {
	layer   Layer
	sel     feature.Set
	removed feature.Set
}

// NewRemoveEvent creates a remove event. sel is the selection after the
// change, removed the features that left it.
func NewRemoveEvent(l Layer, sel, removed feature.Set) *RemoveEvent {
	return &RemoveEvent{layer: l, sel: sel, removed: removed}
}

// Layer returns the layer the change happened on.
func (e *RemoveEvent) Layer() Layer { return e.layer }

// Selection returns the selection after the removal.
func (e *RemoveEvent) Selection() feature.Set { return e.sel }

// Removed returns the features that were removed.
func (e *RemoveEvent) Removed() feature.Set { return e.removed }
