package selection

import "github.com/mapyard/mapyard/internal/feature"

// FireMode determines when a listener observes an event relative to the
// goroutine that triggered the selection change.
type FireMode int

const (
	// FireImmediate fires the listener synchronously on the goroutine that
	// caused the selection update.
	FireImmediate FireMode = iota

	// FireUIThread would fire each event individually on the UI thread.
	// It is not supported; registration with this mode fails.
	FireUIThread

	// FireUIThreadConsolidated fires the listener later on the UI task
	// loop. Events are delivered in the right order but may be delayed.
	FireUIThreadConsolidated
)

// String returns a human-readable fire mode name.
func (m FireMode) String() string {
	switch m {
	case FireImmediate:
		return "immediate"
	case FireUIThread:
		return "ui-thread"
	case FireUIThreadConsolidated:
		return "ui-thread-consolidated"
	default:
		return "unknown"
	}
}

// SelectionListener is the legacy listener shape. It only receives the
// selection resulting from a change. New code should implement
// EventListener instead, which receives more information about the event.
type SelectionListener interface {
	SelectionChanged(sel feature.Set)
}

// EventListener receives the full selection event.
type EventListener interface {
	SelectionEventFired(e Event)
}

// listenerEntry identifies a registered listener. Exactly one of the two
// fields is set; the set field doubles as the shape tag. Entries compare
// with ==, which gives identity-based dedup: the same value registered
// under the same shape is the same entry.
type listenerEntry struct {
	legacy SelectionListener
	full   EventListener
}

// fire translates the event into the shape the listener expects and
// invokes it.
func (e listenerEntry) fire(evt Event) {
	if e.legacy != nil {
		e.legacy.SelectionChanged(evt.Selection())
		return
	}
	e.full.SelectionEventFired(evt)
}
