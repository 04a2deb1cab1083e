package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	qq := capture.Profiles[0]
	obs := []model.TextObservation{
		{X: 300, Y: 5, Width: 100, Height: 40, Identifier: "si5", Text: "Alice"},
		{X: 60, Y: 100, Width: 100, Height: 40, Identifier: "9w", Text: "Bob"},
		{X: 60, Y: 150, Width: 100, Height: 40, Identifier: "9u", Text: "hi"},
		{X: 600, Y: 250, Width: 80, Height: 40, Identifier: "9u", Text: "ok"},
		{X: 10, Y: 300, Width: 50, Height: 20, Text: "12:01"},
	}
	boxes := Classify(obs, &qq, capture.Screen{Width: 700, Height: 1400}, capture.DefaultHeuristics())
	require.Len(t, boxes, 5)

	kinds := make([]Kind, len(boxes))
	for i, b := range boxes {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []Kind{KindTitle, KindSender, KindPeer, KindSelf, KindText}, kinds)
	assert.Equal(t, "[9u] self", boxes[3].Label)
	assert.Equal(t, "[-]", boxes[4].Label)
	assert.Equal(t, [4]int{600, 250, 80, 40}, boxes[3].Bounds)
}

func TestClassify_NoProfile(t *testing.T) {
	obs := []model.TextObservation{{X: 600, Identifier: "9u", Text: "ok"}}
	boxes := Classify(obs, nil, capture.Screen{Width: 700}, capture.DefaultHeuristics())
	assert.Equal(t, KindText, boxes[0].Kind)
}

func TestAnnotate_BlankCanvas(t *testing.T) {
	boxes := []Box{{Bounds: [4]int{10, 10, 50, 30}, Kind: KindSelf}}
	img, err := Annotate(nil, capture.Screen{Width: 200, Height: 100}, boxes, 100)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(150, 90))
	assert.Equal(t, kindColors[KindSelf], img.RGBAAt(10, 20)) // left edge
	assert.Equal(t, kindColors[KindSelf], img.RGBAAt(59, 20)) // right edge
	assert.Equal(t, thresholdColor, img.RGBAAt(100, 50))
}

func TestAnnotate_ScalesToBackground(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 400, 200))
	boxes := []Box{{Bounds: [4]int{10, 10, 50, 30}, Kind: KindPeer}}
	img, err := Annotate(bg, capture.Screen{Width: 200, Height: 100}, boxes, -1)
	require.NoError(t, err)
	assert.Equal(t, kindColors[KindPeer], img.RGBAAt(20, 30)) // x scaled by 2
	assert.NotEqual(t, thresholdColor, img.RGBAAt(0, 50))
}

func TestAnnotate_UnknownScreen(t *testing.T) {
	_, err := Annotate(nil, capture.Screen{}, nil, -1)
	assert.Error(t, err)
}

func TestAnnotate_BoxesOutsideImage(t *testing.T) {
	boxes := []Box{
		{Bounds: [4]int{-50, -50, 20, 20}, Label: "gone"},
		{Bounds: [4]int{190, 90, 100, 100}, Label: "clipped"},
	}
	_, err := Annotate(nil, capture.Screen{Width: 200, Height: 100}, boxes, 5000)
	assert.NoError(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := Annotate(nil, capture.Screen{Width: 32, Height: 16}, []Box{{Bounds: [4]int{1, 1, 10, 10}, Label: "x"}}, 8)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
