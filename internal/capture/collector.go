package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
)

// Collector turns what is on screen into a CollectionResult. Captures on
// one Collector are serialised.
type Collector struct {
	source     platform.SnapshotSource
	heuristics Heuristics
	profiles   []Profile
	logger     *slog.Logger

	mu sync.Mutex
}

// NewCollector returns a Collector reading from source. A nil logger uses
// slog.Default().
func NewCollector(source platform.SnapshotSource, h Heuristics, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		source:     source,
		heuristics: h,
		profiles:   Profiles,
		logger:     logger,
	}
}

// WithProfiles replaces the recognised-app profiles.
func (c *Collector) WithProfiles(profiles []Profile) *Collector {
	c.profiles = profiles
	return c
}

// Labels returns the participant labels used when rendering transcripts.
func (c *Collector) Labels() model.Labels {
	return model.Labels{Self: c.heuristics.SelfLabel, Peer: c.heuristics.PeerPlaceholder}
}

// Capture reads the current screen once. It never fails: an unavailable
// source or a broken tree yields a smaller (possibly empty) result, with
// the reason in DebugInfo.
func (c *Collector) Capture(ctx context.Context) (result model.CollectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var debug strings.Builder
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("capture aborted", "error", r)
			fmt.Fprintf(&debug, "error: %v\n", r)
			result = model.CollectionResult{App: result.App}
		}
		result.DebugInfo = debug.String()
	}()

	if c.source == nil {
		debug.WriteString("no snapshot source\n")
		return result
	}
	frame, err := c.source.Capture(ctx)
	if err != nil {
		c.logger.Info("source unavailable", "error", err)
		fmt.Fprintf(&debug, "source unavailable: %v\n", err)
		return result
	}
	fmt.Fprintf(&debug, "windows: %d\n", len(frame.Windows))

	win, ok := model.SelectWindow(frame.Windows)
	if !ok {
		debug.WriteString("no valid root\n")
		return result
	}
	result.App = win.App
	fmt.Fprintf(&debug, "app: %s\n", win.App)

	profile, recognised := lookupProfile(c.profiles, win.App)
	if recognised && c.heuristics.Structured {
		screen := Screen{Width: frame.ScreenWidth, Height: frame.ScreenHeight}
		if screen.Width <= 0 {
			screen.Width = win.Root.Bounds()[2]
		}
		if screen.Height <= 0 {
			screen.Height = win.Root.Bounds()[3]
		}
		messages := Reconstruct(win.Root, profile, screen, c.heuristics, c.logger)
		lines := make([]string, 0, len(messages))
		for _, m := range messages {
			lines = append(lines, model.FormatMessage(m, c.Labels()))
		}
		result.Messages = messages
		result.RawContext = model.BuildRawContext(lines, model.MaxContextEntries)
		fmt.Fprintf(&debug, "profile: %s\nmessages: %d\n", profile.Name, len(messages))
	} else {
		texts, raw := CollectGeneric(win.Root, c.logger)
		result.RawContext = raw
		fmt.Fprintf(&debug, "generic texts: %d\n", len(texts))
	}

	c.logger.Debug("captured", "app", result.App, "messages", len(result.Messages), "context_runes", len([]rune(result.RawContext)))
	return result
}
