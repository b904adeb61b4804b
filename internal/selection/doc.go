// Package selection provides the global selection-event manager for mapyard.
//
// The manager tracks the selection of whichever data layer is currently
// active and republishes selection changes to registered listeners. Layer
// switches are translated into ordinary selection replacements, so
// listeners never need to monitor the active layer themselves: when the
// active layer changes, listeners first see the old layer's selection
// replaced by the empty set, then the new layer's selection restored.
//
// # Fire Modes
//
// Listeners register under one of two fire modes:
//
//   - FireImmediate: the listener runs synchronously on the goroutine that
//     triggered the selection change. Use for state that other code reads
//     right after mutating the selection.
//   - FireUIThreadConsolidated: the listener runs later on the UI task
//     loop. Events arrive in dispatch order, but their timing relative to
//     immediate listeners is unspecified.
//
// FireUIThread (deferred but unconsolidated) is historically unsupported
// and rejected at registration.
//
// # Listener Shapes
//
// Two listener shapes exist. EventListener receives the full event and is
// preferred for new code; SelectionListener is the legacy shape and only
// receives the resulting selection set. The same underlying value may be
// registered once per shape and mode; duplicate registrations are no-ops.
//
// Listeners are identified by interface equality, so the registered value
// must have a comparable dynamic type (normally a pointer).
//
// # Threading
//
// All methods are safe for concurrent use. Registration and removal may
// run while a dispatch is in progress; in-flight fan-outs iterate a
// snapshot and are unaffected. A panicking listener is recovered and does
// not stop delivery to the remaining listeners of the same fan-out.
package selection
