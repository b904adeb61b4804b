package layer

import (
	"sync"
	"testing"

	"github.com/mapyard/mapyard/internal/feature"
	"github.com/mapyard/mapyard/internal/selection"
)

// eventRecorder records native selection events.
type eventRecorder struct {
	mu     sync.Mutex
	events []selection.Event
}

func (r *eventRecorder) SelectionEventFired(e selection.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) recorded() []selection.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]selection.Event, len(r.events))
	copy(out, r.events)
	return out
}

func TestNew(t *testing.T) {
	l := New("roads")

	if l.Name() != "roads" {
		t.Errorf("expected name roads, got %s", l.Name())
	}
	if l.ID() == "" {
		t.Error("expected non-empty ID")
	}
	if New("other").ID() == l.ID() {
		t.Error("expected unique IDs")
	}
	if !l.CurrentSelection().IsEmpty() {
		t.Error("expected empty initial selection")
	}
}

func TestDataLayer_Select(t *testing.T) {
	l := New("roads")
	rec := &eventRecorder{}
	l.SubscribeSelection(rec)

	l.Select(1, 2)

	if !l.CurrentSelection().Equal(feature.NewSet(1, 2)) {
		t.Errorf("expected {1, 2}, got %s", l.CurrentSelection())
	}

	events := rec.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	add, ok := events[0].(*selection.AddEvent)
	if !ok {
		t.Fatalf("expected AddEvent, got %T", events[0])
	}
	if !add.Added().Equal(feature.NewSet(1, 2)) {
		t.Errorf("expected added {1, 2}, got %s", add.Added())
	}
	if add.Layer() != selection.Layer(l) {
		t.Error("event should reference the originating layer")
	}
}

func TestDataLayer_Select_AlreadySelected(t *testing.T) {
	l := New("roads")
	l.Select(1)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.Select(1)

	if got := len(rec.recorded()); got != 0 {
		t.Errorf("re-selecting selected features should not fire, got %d events", got)
	}
}

func TestDataLayer_Select_PartialOverlap(t *testing.T) {
	l := New("roads")
	l.Select(1)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.Select(1, 2)

	events := rec.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	add := events[0].(*selection.AddEvent)
	if !add.Added().Equal(feature.NewSet(2)) {
		t.Errorf("expected only the new feature in Added, got %s", add.Added())
	}
	if !add.Selection().Equal(feature.NewSet(1, 2)) {
		t.Errorf("expected selection {1, 2}, got %s", add.Selection())
	}
}

func TestDataLayer_Deselect(t *testing.T) {
	l := New("roads")
	l.Select(1, 2, 3)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.Deselect(2, 9)

	events := rec.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	rem, ok := events[0].(*selection.RemoveEvent)
	if !ok {
		t.Fatalf("expected RemoveEvent, got %T", events[0])
	}
	if !rem.Removed().Equal(feature.NewSet(2)) {
		t.Errorf("expected removed {2}, got %s", rem.Removed())
	}
	if !rem.Selection().Equal(feature.NewSet(1, 3)) {
		t.Errorf("expected selection {1, 3}, got %s", rem.Selection())
	}
}

func TestDataLayer_Deselect_NotSelected(t *testing.T) {
	l := New("roads")
	rec := &eventRecorder{}
	l.SubscribeSelection(rec)

	l.Deselect(5)

	if got := len(rec.recorded()); got != 0 {
		t.Errorf("deselecting unselected features should not fire, got %d events", got)
	}
}

func TestDataLayer_SetSelection(t *testing.T) {
	l := New("roads")
	l.Select(1)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.SetSelection(feature.NewSet(7, 8))

	events := rec.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	rep, ok := events[0].(*selection.ReplaceEvent)
	if !ok {
		t.Fatalf("expected ReplaceEvent, got %T", events[0])
	}
	if !rep.OldSelection().Equal(feature.NewSet(1)) {
		t.Errorf("expected old {1}, got %s", rep.OldSelection())
	}
	if !rep.Selection().Equal(feature.NewSet(7, 8)) {
		t.Errorf("expected new {7, 8}, got %s", rep.Selection())
	}
}

func TestDataLayer_SetSelection_NoChange(t *testing.T) {
	l := New("roads")
	l.Select(1)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.SetSelection(feature.NewSet(1))

	if got := len(rec.recorded()); got != 0 {
		t.Errorf("replacing with an equal selection should not fire, got %d events", got)
	}
}

func TestDataLayer_ClearSelection(t *testing.T) {
	l := New("roads")
	l.Select(1, 2)

	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.ClearSelection()

	if !l.CurrentSelection().IsEmpty() {
		t.Error("expected empty selection")
	}
	if got := len(rec.recorded()); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}

	// Clearing again is a no-op.
	l.ClearSelection()
	if got := len(rec.recorded()); got != 1 {
		t.Errorf("clearing an empty selection should not fire, got %d events", got)
	}
}

func TestDataLayer_SubscribeIdempotent(t *testing.T) {
	l := New("roads")
	rec := &eventRecorder{}

	l.SubscribeSelection(rec)
	l.SubscribeSelection(rec)
	l.Select(1)

	if got := len(rec.recorded()); got != 1 {
		t.Errorf("duplicate subscription delivered %d events", got)
	}
}

func TestDataLayer_Unsubscribe(t *testing.T) {
	l := New("roads")
	rec := &eventRecorder{}
	l.SubscribeSelection(rec)
	l.UnsubscribeSelection(rec)

	l.Select(1)

	if got := len(rec.recorded()); got != 0 {
		t.Errorf("unsubscribed listener received %d events", got)
	}

	// Unsubscribing again must not panic.
	l.UnsubscribeSelection(rec)
}
