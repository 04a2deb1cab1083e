package gesture

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EventKind is the type of a pointer event.
type EventKind int

const (
	Down EventKind = iota
	Move
	Up
	Cancel
)

func (k EventKind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ParseEventKind converts a script value to an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	case "cancel":
		return Cancel, nil
	default:
		return Down, fmt.Errorf("unknown pointer event: %q (expected down, move, up, or cancel)", s)
	}
}

// PointerEvent is one pointer primitive delivered to the Controller.
type PointerEvent struct {
	Kind EventKind
	X, Y float64
	At   time.Time
}

// Step is one scripted pointer event, timed from the start of the script.
type Step struct {
	After time.Duration `yaml:"after"`
	Kind  string        `yaml:"kind"`
	X     float64       `yaml:"x,omitempty"`
	Y     float64       `yaml:"y,omitempty"`
}

// Script is a recorded pointer-event sequence.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Validate checks kinds and that step times never go backward.
func (s Script) Validate() error {
	var last time.Duration
	for i, st := range s.Steps {
		if _, err := ParseEventKind(st.Kind); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if st.After < last {
			return fmt.Errorf("step %d: time %s is before previous step %s", i, st.After, last)
		}
		last = st.After
	}
	return nil
}

// Play sends the script's events on out at their scheduled times and
// closes out when done or when ctx is cancelled.
func (s Script) Play(ctx context.Context, out chan<- PointerEvent) error {
	defer close(out)
	if err := s.Validate(); err != nil {
		return err
	}
	start := time.Now()
	for _, st := range s.Steps {
		kind, _ := ParseEventKind(st.Kind)
		if wait := time.Until(start.Add(st.After)); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		ev := PointerEvent{Kind: kind, X: st.X, Y: st.Y, At: time.Now()}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- ev:
		}
	}
	return nil
}
