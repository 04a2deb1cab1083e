// Package replay is a host backend that serves captures from a recorded
// session file instead of a live accessibility service. Each frame is one
// screenful; a backward scroll moves to the next frame.
package replay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
	"gopkg.in/yaml.v3"
)

// BackendName is the name this backend registers under.
const BackendName = "replay"

func init() {
	platform.Register(BackendName, func(target string) (*platform.Provider, error) {
		h, err := Load(target)
		if err != nil {
			return nil, err
		}
		return h.Provider(), nil
	})
}

// Screen is the recorded display size in pixels.
type Screen struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// WindowRecord is one recorded window.
type WindowRecord struct {
	App    string         `yaml:"app,omitempty"    json:"app,omitempty"`
	Active bool           `yaml:"active,omitempty" json:"active,omitempty"`
	Root   *model.Element `yaml:"root,omitempty"   json:"root,omitempty"`
}

// FrameRecord is one recorded screenful. Root is shorthand for a single
// active window of the session's app.
type FrameRecord struct {
	Root    *model.Element `yaml:"root,omitempty"    json:"root,omitempty"`
	Windows []WindowRecord `yaml:"windows,omitempty" json:"windows,omitempty"`
}

// Session is the on-disk recording. Frames are ordered newest first:
// frames[i+1] is what one backward scroll from frames[i] reveals.
type Session struct {
	App    string        `yaml:"app"    json:"app"`
	Screen Screen        `yaml:"screen" json:"screen"`
	Frames []FrameRecord `yaml:"frames" json:"frames"`
	// ScrollUnsupported makes every scroll fail as if the host could not
	// dispatch gestures.
	ScrollUnsupported bool `yaml:"scroll_unsupported,omitempty" json:"scroll_unsupported,omitempty"`
}

// Host serves a Session. It is safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	session Session
	cursor  int
	scrolls int
	logger  *slog.Logger
}

// Load reads a session file (YAML or JSON).
func Load(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return Parse(data)
}

// Parse decodes a session from YAML or JSON bytes.
func Parse(data []byte) (*Host, error) {
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return New(s), nil
}

// New returns a Host positioned at the newest frame.
func New(s Session) *Host {
	return &Host{session: s, logger: slog.Default()}
}

// WithLogger sets the logger used for scroll events.
func (h *Host) WithLogger(logger *slog.Logger) *Host {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// Provider exposes the host through the platform interfaces.
func (h *Host) Provider() *platform.Provider {
	return &platform.Provider{Source: h, Scroller: h}
}

// Session returns the recording being served.
func (h *Host) Session() Session {
	return h.session
}

// Seek positions the host on frame i.
func (h *Host) Seek(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.session.Frames) {
		return fmt.Errorf("frame %d out of range (session has %d)", i, len(h.session.Frames))
	}
	h.cursor = i
	return nil
}

// Scrolls returns how many backward scrolls succeeded.
func (h *Host) Scrolls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrolls
}

// Capture implements platform.SnapshotSource.
func (h *Host) Capture(ctx context.Context) (*platform.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.session.Frames) == 0 {
		return nil, platform.ErrNoWindow
	}
	rec := h.session.Frames[h.cursor]
	frame := &platform.Frame{
		ScreenWidth:  h.session.Screen.Width,
		ScreenHeight: h.session.Screen.Height,
	}
	if rec.Root != nil {
		frame.Windows = append(frame.Windows, model.Window{App: h.session.App, Active: true, Root: rec.Root.AsNode()})
	}
	for _, w := range rec.Windows {
		app := w.App
		if app == "" {
			app = h.session.App
		}
		win := model.Window{App: app, Active: w.Active}
		if w.Root != nil {
			win.Root = w.Root.AsNode()
		}
		frame.Windows = append(frame.Windows, win)
	}
	if len(frame.Windows) == 0 {
		return nil, platform.ErrNoWindow
	}
	return frame, nil
}

// ScrollBackward implements platform.Scroller.
func (h *Host) ScrollBackward(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session.ScrollUnsupported {
		return platform.ErrScrollUnsupported
	}
	if h.cursor+1 >= len(h.session.Frames) {
		return platform.ErrEndOfHistory
	}
	swipe := platform.BackwardSwipe(h.session.Screen.Width, h.session.Screen.Height)
	h.cursor++
	h.scrolls++
	h.logger.Debug("replayed backward swipe",
		"frame", h.cursor,
		"from", [2]int{swipe.FromX, swipe.FromY},
		"to", [2]int{swipe.ToX, swipe.ToY},
	)
	return nil
}
