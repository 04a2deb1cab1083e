package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/mj1618/chatscribe/internal/gesture"
	"github.com/mj1618/chatscribe/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var holdCmd = &cobra.Command{
	Use:   "hold",
	Short: "Replay pointer gestures through the capture controller",
	Long: `Feed a scripted pointer-event sequence to the gesture controller against a
session. A quick press and release captures once, moving past the touch slop
is a drag, and holding past the hold threshold scrolls back through history,
merging each screen until release.

The gesture script is YAML:
  steps:
    - {after: 0s, kind: down, x: 650, y: 900}
    - {after: 3s, kind: up}

Prints one result per gesture. --suggest also asks the reply provider for
suggestions on each captured transcript.

Examples:
  chatscribe hold --session qq-group.yaml --gesture long-press.yaml
  chatscribe hold --session qq-group.yaml --gesture long-press.yaml --suggest`,
	RunE: runHold,
}

func init() {
	rootCmd.AddCommand(holdCmd)
	addSourceFlags(holdCmd)
	holdCmd.Flags().String("gesture", "", "Pointer-event script (YAML), - for stdin")
	holdCmd.Flags().Bool("suggest", false, "Ask for reply suggestions on each captured transcript")
}

func loadScript(path string) (gesture.Script, error) {
	var s gesture.Script
	data, err := readInput(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse gesture script: %w", err)
	}
	return s, s.Validate()
}

func runHold(cmd *cobra.Command, args []string) error {
	scriptPath, _ := cmd.Flags().GetString("gesture")
	suggest, _ := cmd.Flags().GetBool("suggest")
	if scriptPath == "" {
		return fmt.Errorf("--gesture is required")
	}
	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}
	provider, err := openSource(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	controller := gesture.NewController(newCollector(provider.Source), provider.Scroller, settings.GestureTimings(), logger)
	events := make(chan gesture.PointerEvent)
	playErr := make(chan error, 1)
	go func() {
		playErr <- script.Play(ctx, events)
	}()

	var results []output.GestureResult
	err = controller.Run(ctx, events, func(o gesture.Outcome) {
		results = append(results, gestureResult(ctx, o, suggest))
	})
	cancel()
	if err != nil {
		return err
	}
	if err := <-playErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return output.Print(results)
}

func gestureResult(ctx context.Context, o gesture.Outcome, suggest bool) output.GestureResult {
	r := output.GestureResult{Gesture: o.Kind.String(), Iterations: o.Iterations}
	if o.StopReason != nil {
		r.Stopped = o.StopReason.Error()
	}
	switch o.Kind {
	case gesture.OutcomeDrag:
		r.Offset = &[2]float64{o.DX, o.DY}
	case gesture.OutcomeTap:
		if o.Result != nil {
			display := o.Result.ForDisplay()
			r.Result = &display
		}
	case gesture.OutcomeHold:
		r.Result = o.Result
	}
	if suggest && r.Result != nil {
		opts, err := replyProvider().Suggest(ctx, o.Result.RawContext, settings.Reply.Limit)
		if err != nil {
			logger.Warn("suggest failed", "error", err)
			if r.Stopped != "" {
				r.Stopped += "; "
			}
			r.Stopped += fmt.Sprintf("suggest failed: %v", err)
		}
		r.Suggestions = opts
	}
	return r
}
