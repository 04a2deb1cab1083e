package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
	"github.com/mj1618/chatscribe/internal/render"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Draw what the heuristics see on a captured screen",
	Long: `Render one frame of a session as a PNG: a box per text node, coloured by the
role the heuristics assign it (title, sender label, peer or self message,
other text), and a red line at the self/peer threshold.

Boxes are drawn on a blank canvas the size of the recorded screen, or over a
screenshot given with --background.

Examples:
  chatscribe annotate --session qq-group.yaml --out frame0.png
  chatscribe annotate --session qq-group.yaml --frame 1 --background shot.png --out frame1.png`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	addSourceFlags(annotateCmd)
	annotateCmd.Flags().String("out", "", "Output PNG path")
	annotateCmd.Flags().String("background", "", "Screenshot (PNG or JPEG) to draw over")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	bgPath, _ := cmd.Flags().GetString("background")
	if outPath == "" {
		return fmt.Errorf("--out is required")
	}

	provider, err := openSource(cmd)
	if err != nil {
		return err
	}
	frame, err := provider.Source.Capture(cmd.Context())
	if err != nil {
		return err
	}
	win, ok := model.SelectWindow(frame.Windows)
	if !ok {
		return fmt.Errorf("%w: no window with a usable root", platform.ErrNoWindow)
	}

	screen := capture.Screen{Width: frame.ScreenWidth, Height: frame.ScreenHeight}
	if screen.Width <= 0 || screen.Height <= 0 {
		b := win.Root.Bounds()
		screen = capture.Screen{Width: b[2], Height: b[3]}
	}

	h := settings.CaptureHeuristics()
	var profile *capture.Profile
	if p, ok := capture.ProfileFor(win.App); ok && h.Structured {
		profile = &p
	}
	boxes := render.Classify(model.Extract(win.Root, logger), profile, screen, h)

	threshold := -1.0
	if t, ok := capture.SelfThreshold(screen.Width, h.SelfThresholdRatio); ok && profile != nil {
		threshold = t
	}

	var bg image.Image
	if bgPath != "" {
		f, err := os.Open(bgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if bg, _, err = image.Decode(f); err != nil {
			return fmt.Errorf("failed to decode %s: %w", bgPath, err)
		}
	}

	img, err := render.Annotate(bg, screen, boxes, threshold)
	if err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := render.WritePNG(out, img); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("annotated frame", "app", win.App, "boxes", len(boxes), "out", outPath)
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d boxes)\n", outPath, len(boxes))
	return nil
}
