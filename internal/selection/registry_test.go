package selection

import (
	"testing"

	"github.com/mapyard/mapyard/internal/feature"
)

// nopListener implements both listener shapes and does nothing.
type nopListener struct{}

func (n *nopListener) SelectionChanged(sel feature.Set) {}
func (n *nopListener) SelectionEventFired(e Event)      {}

func TestRegistry_AddIdempotent(t *testing.T) {
	r := newRegistry()
	l := &nopListener{}

	if !r.add(FireImmediate, listenerEntry{legacy: l}) {
		t.Error("first add should report insertion")
	}
	if r.add(FireImmediate, listenerEntry{legacy: l}) {
		t.Error("second add should be a no-op")
	}
	if got := r.count(FireImmediate); got != 1 {
		t.Errorf("expected 1 entry, got %d", got)
	}
}

func TestRegistry_SameListenerBothModes(t *testing.T) {
	r := newRegistry()
	l := &nopListener{}

	r.add(FireImmediate, listenerEntry{legacy: l})
	r.add(FireUIThreadConsolidated, listenerEntry{legacy: l})

	if got := r.count(FireImmediate); got != 1 {
		t.Errorf("expected 1 immediate entry, got %d", got)
	}
	if got := r.count(FireUIThreadConsolidated); got != 1 {
		t.Errorf("expected 1 deferred entry, got %d", got)
	}
}

func TestRegistry_ShapesAreIndependentEntries(t *testing.T) {
	r := newRegistry()
	l := &nopListener{}

	// The same value registered under both shapes yields two entries.
	r.add(FireImmediate, listenerEntry{legacy: l})
	r.add(FireImmediate, listenerEntry{full: l})

	if got := r.count(FireImmediate); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

func TestRegistry_RemoveBothModes(t *testing.T) {
	r := newRegistry()
	l := &nopListener{}

	r.add(FireImmediate, listenerEntry{legacy: l})
	r.add(FireUIThreadConsolidated, listenerEntry{legacy: l})
	r.remove(listenerEntry{legacy: l})

	if got := r.count(FireImmediate); got != 0 {
		t.Errorf("expected 0 immediate entries, got %d", got)
	}
	if got := r.count(FireUIThreadConsolidated); got != 0 {
		t.Errorf("expected 0 deferred entries, got %d", got)
	}
}

func TestRegistry_RemoveOnlyMatchingShape(t *testing.T) {
	r := newRegistry()
	l := &nopListener{}

	r.add(FireImmediate, listenerEntry{legacy: l})
	r.add(FireImmediate, listenerEntry{full: l})
	r.remove(listenerEntry{legacy: l})

	if got := r.count(FireImmediate); got != 1 {
		t.Errorf("expected the full-event entry to survive, got %d entries", got)
	}
}

func TestRegistry_RemoveAbsent(t *testing.T) {
	r := newRegistry()

	// Must not panic or alter anything.
	r.remove(listenerEntry{legacy: &nopListener{}})

	if got := r.count(FireImmediate); got != 0 {
		t.Errorf("expected 0 entries, got %d", got)
	}
}

func TestRegistry_SnapshotUnaffectedByMutation(t *testing.T) {
	r := newRegistry()
	first := &nopListener{}
	r.add(FireImmediate, listenerEntry{legacy: first})

	snap := r.snapshot(FireImmediate)

	r.add(FireImmediate, listenerEntry{legacy: &nopListener{}})
	r.remove(listenerEntry{legacy: first})

	if len(snap) != 1 {
		t.Errorf("snapshot changed under mutation: len %d", len(snap))
	}
	if snap[0].legacy != SelectionListener(first) {
		t.Error("snapshot entry changed under mutation")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := newRegistry()
	r.add(FireImmediate, listenerEntry{legacy: &nopListener{}})
	r.add(FireUIThreadConsolidated, listenerEntry{full: &nopListener{}})

	r.clear()

	if r.count(FireImmediate) != 0 || r.count(FireUIThreadConsolidated) != 0 {
		t.Error("expected both lists empty after clear")
	}
}
