package platform

import "context"

// SnapshotSource reads what is currently on screen from the host
// accessibility layer.
type SnapshotSource interface {
	// Capture returns the windows visible right now. Nodes in the returned
	// frame are only valid until the next call. ErrNoWindow means nothing
	// readable is on screen.
	Capture(ctx context.Context) (*Frame, error)
}

// Scroller asks the host to scroll the chat surface.
type Scroller interface {
	// ScrollBackward scrolls one step toward older content and returns once
	// the host reports the gesture done. ErrEndOfHistory and
	// ErrScrollUnsupported are the expected failures.
	ScrollBackward(ctx context.Context) error
}
