// Package gesture implements the press-and-hold continuous capture flow:
// a tap captures once, a drag moves the overlay, and a hold scrolls back
// through history and merges every screen into one transcript.
package gesture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
)

// ErrNoGesture is returned when the event stream ends before a gesture
// starts.
var ErrNoGesture = errors.New("event stream closed before a gesture started")

// ErrAborted is returned when a gesture is cancelled before it resolves to
// a tap, drag, or hold.
var ErrAborted = errors.New("gesture aborted")

// State is the controller's position in the gesture state machine.
type State int32

const (
	Idle State = iota
	Deciding
	Tap
	Dragging
	ContinuousCapture
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Deciding:
		return "deciding"
	case Tap:
		return "tap"
	case Dragging:
		return "dragging"
	case ContinuousCapture:
		return "continuous-capture"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config holds the gesture timings.
type Config struct {
	HoldThreshold  time.Duration `yaml:"hold_threshold" json:"hold_threshold"`
	TouchSlop      float64       `yaml:"touch_slop" json:"touch_slop"`
	SettleDelay    time.Duration `yaml:"settle_delay" json:"settle_delay"`
	IterationDelay time.Duration `yaml:"iteration_delay" json:"iteration_delay"`
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		HoldThreshold:  300 * time.Millisecond,
		TouchSlop:      5,
		SettleDelay:    400 * time.Millisecond,
		IterationDelay: 100 * time.Millisecond,
	}
}

// Capturer performs one screen capture. *capture.Collector satisfies it.
type Capturer interface {
	Capture(ctx context.Context) model.CollectionResult
	Labels() model.Labels
}

// OutcomeKind says how a gesture resolved.
type OutcomeKind int

const (
	OutcomeTap OutcomeKind = iota
	OutcomeDrag
	OutcomeHold
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeTap:
		return "tap"
	case OutcomeDrag:
		return "drag"
	case OutcomeHold:
		return "hold"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of one gesture.
type Outcome struct {
	Kind OutcomeKind
	// Result is set for taps and holds.
	Result *model.CollectionResult
	// DX and DY are the final displacement of a drag.
	DX, DY float64
	// Iterations counts completed scroll-and-capture rounds of a hold.
	Iterations int
	// StopReason is why a hold's loop ended before pointer-up, if it did.
	StopReason error
}

// Controller runs the gesture state machine against one capturer and one
// scroller. A Controller handles one gesture at a time.
type Controller struct {
	cfg      Config
	capturer Capturer
	scroller platform.Scroller
	logger   *slog.Logger
	state    atomic.Int32
}

// NewController creates a Controller. A nil scroller makes every hold stop
// after its first capture; a nil logger uses slog.Default().
func NewController(capturer Capturer, scroller platform.Scroller, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{cfg: cfg, capturer: capturer, scroller: scroller, logger: logger}
}

// State returns the current state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	if prev != s {
		c.logger.Debug("gesture state", "from", prev.String(), "to", s.String())
	}
}

// Run handles gestures from events until the stream closes or ctx is done,
// calling onOutcome after each one.
func (c *Controller) Run(ctx context.Context, events <-chan PointerEvent, onOutcome func(Outcome)) error {
	for {
		out, err := c.HandleGesture(ctx, events)
		switch {
		case errors.Is(err, ErrNoGesture):
			return nil
		case errors.Is(err, ErrAborted):
			continue
		case err != nil:
			return err
		}
		if onOutcome != nil {
			onOutcome(out)
		}
	}
}

// HandleGesture waits for the next pointer-down and drives it to an
// outcome. Events before the pointer-down are ignored.
func (c *Controller) HandleGesture(ctx context.Context, events <-chan PointerEvent) (Outcome, error) {
	defer c.setState(Idle)

	var down PointerEvent
	for {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return Outcome{}, ErrNoGesture
			}
			if ev.Kind != Down {
				continue
			}
			down = ev
		}
		break
	}

	c.setState(Deciding)
	timer := time.NewTimer(c.cfg.HoldThreshold)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return Outcome{}, ErrAborted
			}
			switch ev.Kind {
			case Move:
				if c.beyondSlop(down, ev) {
					timer.Stop()
					return c.drag(ctx, events, down, ev)
				}
			case Up:
				timer.Stop()
				return c.tap(ctx), nil
			case Cancel:
				return Outcome{}, ErrAborted
			}
		case <-timer.C:
			return c.hold(ctx, events), nil
		}
	}
}

func (c *Controller) beyondSlop(down, ev PointerEvent) bool {
	return math.Abs(ev.X-down.X) > c.cfg.TouchSlop || math.Abs(ev.Y-down.Y) > c.cfg.TouchSlop
}

func (c *Controller) tap(ctx context.Context) Outcome {
	c.setState(Tap)
	r := c.capturer.Capture(ctx)
	c.logger.Info("tap capture", "app", r.App, "messages", len(r.Messages))
	return Outcome{Kind: OutcomeTap, Result: &r}
}

func (c *Controller) drag(ctx context.Context, events <-chan PointerEvent, down, last PointerEvent) (Outcome, error) {
	c.setState(Dragging)
	for {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return Outcome{Kind: OutcomeDrag, DX: last.X - down.X, DY: last.Y - down.Y}, nil
			}
			switch ev.Kind {
			case Move:
				last = ev
			case Up, Cancel:
				if ev.Kind == Up {
					last = ev
				}
				return Outcome{Kind: OutcomeDrag, DX: last.X - down.X, DY: last.Y - down.Y}, nil
			}
		}
	}
}

// holdReport is what the capture loop hands back when it exits.
type holdReport struct {
	messages   []model.ChatMessage
	app        string
	lastRaw    string
	iterations int
	stopErr    error
}

func (c *Controller) hold(ctx context.Context, events <-chan PointerEvent) Outcome {
	c.setState(ContinuousCapture)
	session := uuid.NewString()
	log := c.logger.With("session", session)
	log.Info("continuous capture started")

	seed := c.capturer.Capture(ctx)
	start := holdReport{messages: seed.Messages, app: seed.App, lastRaw: seed.RawContext}

	stop, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan holdReport, 1)
	go func() {
		done <- c.captureLoop(ctx, stop, start, log)
	}()

	var (
		report   holdReport
		finished bool
	)
watch:
	for {
		select {
		case <-ctx.Done():
			break watch
		case ev, ok := <-events:
			if !ok || ev.Kind == Up || ev.Kind == Cancel {
				break watch
			}
		case report = <-done:
			finished = true
			if report.stopErr != nil {
				log.Info("capture loop stopped", "reason", report.stopErr, "iterations", report.iterations)
			}
			done = nil
		}
	}
	cancel()
	if !finished {
		report = <-done
	}

	result := model.CollectionResult{
		Messages:   report.messages,
		RawContext: model.BuildContext(report.messages, c.capturer.Labels()),
		App:        report.app,
		Session:    session,
		DebugInfo:  fmt.Sprintf("accumulated %d messages over %d iterations\n", len(report.messages), report.iterations),
	}
	if len(report.messages) == 0 {
		result.RawContext = report.lastRaw
	}
	if report.stopErr != nil {
		result.DebugInfo += fmt.Sprintf("stopped: %v\n", report.stopErr)
	}
	log.Info("continuous capture finished", "messages", len(result.Messages), "iterations", report.iterations)
	return Outcome{Kind: OutcomeHold, Result: &result, Iterations: report.iterations, StopReason: report.stopErr}
}

// captureLoop scrolls back and merges until stop is cancelled or a scroll
// fails. It is the only writer of the accumulator. Scrolls and captures
// run on ctx so one already in flight completes; stop is checked between
// them and interrupts the delays.
func (c *Controller) captureLoop(ctx, stop context.Context, r holdReport, log *slog.Logger) holdReport {
	for {
		if stop.Err() != nil {
			return r
		}
		if c.scroller == nil {
			r.stopErr = platform.ErrScrollUnsupported
			return r
		}
		if err := c.scroller.ScrollBackward(ctx); err != nil {
			r.stopErr = err
			return r
		}
		if !sleep(stop, c.cfg.SettleDelay) {
			return r
		}
		batch := c.capturer.Capture(ctx)
		before := len(r.messages)
		r.messages = model.Merge(r.messages, batch.Messages)
		if batch.App != "" {
			r.app = batch.App
		}
		if batch.RawContext != "" {
			r.lastRaw = batch.RawContext
		}
		r.iterations++
		log.Debug("iteration", "n", r.iterations, "batch", len(batch.Messages), "added", len(r.messages)-before)
		if !sleep(stop, c.cfg.IterationDelay) {
			return r
		}
	}
}

// sleep waits for d and reports whether stop was still live afterwards.
func sleep(stop context.Context, d time.Duration) bool {
	if d <= 0 {
		return stop.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return stop.Err() == nil
	case <-stop.Done():
		return false
	}
}
