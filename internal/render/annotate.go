// Package render draws what the heuristics saw on a captured frame: one
// box per text observation, colour-coded by role, and the self/peer
// threshold line.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Kind is the role the heuristics assign to an observation.
type Kind int

const (
	KindText Kind = iota
	KindPeer
	KindSelf
	KindSender
	KindTitle
)

var kindColors = map[Kind]color.RGBA{
	KindText:   {R: 160, G: 160, B: 160, A: 255},
	KindPeer:   {R: 30, G: 120, B: 230, A: 255},
	KindSelf:   {R: 40, G: 170, B: 70, A: 255},
	KindSender: {R: 230, G: 140, B: 20, A: 255},
	KindTitle:  {R: 150, G: 60, B: 200, A: 255},
}

var (
	thresholdColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	textColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor   = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Box is one observation to draw, in screen coordinates.
type Box struct {
	Bounds [4]int // x, y, width, height
	Label  string
	Kind   Kind
}

// Classify assigns each observation a role. A nil profile marks every
// observation as plain text.
func Classify(obs []model.TextObservation, p *capture.Profile, screen capture.Screen, h capture.Heuristics) []Box {
	threshold, known := capture.SelfThreshold(screen.Width, h.SelfThresholdRatio)
	boxes := make([]Box, 0, len(obs))
	for _, o := range obs {
		b := Box{Bounds: [4]int{o.X, o.Y, o.Width, o.Height}, Kind: KindText}
		if p != nil && o.Identifier != "" {
			switch o.Identifier {
			case p.ContentID:
				b.Kind = KindPeer
				if known && float64(o.X) > threshold {
					b.Kind = KindSelf
				}
			case p.SenderLabelID:
				b.Kind = KindSender
			case p.TitleID:
				b.Kind = KindTitle
			}
		}
		b.Label = label(o, b.Kind)
		boxes = append(boxes, b)
	}
	return boxes
}

func label(o model.TextObservation, k Kind) string {
	id := o.Identifier
	if id == "" {
		id = "-"
	}
	switch k {
	case KindSelf:
		return fmt.Sprintf("[%s] self", id)
	case KindPeer:
		return fmt.Sprintf("[%s] peer", id)
	case KindSender:
		return fmt.Sprintf("[%s] sender", id)
	case KindTitle:
		return fmt.Sprintf("[%s] title", id)
	default:
		return fmt.Sprintf("[%s]", id)
	}
}

// Annotate draws boxes over bg, scaled from a screen of the given size to
// the image. A nil bg draws on a white canvas the size of the screen. A
// negative threshold skips the threshold line.
func Annotate(bg image.Image, screen capture.Screen, boxes []Box, threshold float64) (*image.RGBA, error) {
	var rgba *image.RGBA
	if bg == nil {
		if screen.Width <= 0 || screen.Height <= 0 {
			return nil, fmt.Errorf("screen size unknown: %dx%d", screen.Width, screen.Height)
		}
		rgba = image.NewRGBA(image.Rect(0, 0, screen.Width, screen.Height))
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	} else {
		rgba = ImageToRGBA(bg)
	}

	scaleX, scaleY := 1.0, 1.0
	if screen.Width > 0 {
		scaleX = float64(rgba.Bounds().Dx()) / float64(screen.Width)
	}
	if screen.Height > 0 {
		scaleY = float64(rgba.Bounds().Dy()) / float64(screen.Height)
	}

	if threshold >= 0 {
		x := rgba.Bounds().Min.X + int(threshold*scaleX)
		for y := rgba.Bounds().Min.Y; y < rgba.Bounds().Max.Y; y++ {
			rgba.Set(x, y, thresholdColor)
		}
	}

	for _, b := range boxes {
		x := int(float64(b.Bounds[0]) * scaleX)
		y := int(float64(b.Bounds[1]) * scaleY)
		w := int(float64(b.Bounds[2]) * scaleX)
		h := int(float64(b.Bounds[3]) * scaleY)
		drawRectangle(rgba, x, y, x+w, y+h, kindColors[b.Kind])
		if b.Label != "" {
			drawTextWithOutline(rgba, b.Label, x+2, y+13)
		}
	}
	return rgba, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// ImageToRGBA converts any image to RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text with its baseline at (x, y).
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
