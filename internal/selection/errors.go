package selection

import "errors"

// Sentinel errors for the selection package.
var (
	// ErrUnsupportedFireMode is returned when registering a listener with a
	// fire mode the manager does not support.
	ErrUnsupportedFireMode = errors.New("fire mode not supported, you probably want FireUIThreadConsolidated")

	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = errors.New("listener cannot be nil")
)
