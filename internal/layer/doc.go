// Package layer provides mapyard's data layers and the active-layer
// manager.
//
// A DataLayer owns its feature selection and notifies native subscribers
// of selection changes. The Manager keeps the ordered list of open layers
// and tracks which one is active; active-layer transitions are announced
// to registered listeners, which is how the selection-event manager learns
// about layer switches.
package layer
