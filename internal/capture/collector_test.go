package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	frame *platform.Frame
	err   error
	panic bool
}

func (s stubSource) Capture(context.Context) (*platform.Frame, error) {
	if s.panic {
		panic("accessibility service died")
	}
	return s.frame, s.err
}

func qqRoot() *model.Element {
	return &model.Element{
		Class:  "android.widget.FrameLayout",
		Bounds: [4]int{0, 0, 700, 1400},
		Children: []model.Element{
			{ID: "com.tencent.mobileqq:id/si5", Text: "Alice", Bounds: [4]int{300, 5, 100, 40}},
			{ID: "com.tencent.mobileqq:id/9u", Text: "hi", Bounds: [4]int{50, 100, 100, 40}},
			{ID: "com.tencent.mobileqq:id/9u", Text: "ok", Bounds: [4]int{600, 200, 80, 40}},
			{ID: "com.tencent.mobileqq:id/9u", Text: "hi", Bounds: [4]int{50, 300, 100, 40}},
		},
	}
}

func frameOf(app string, root *model.Element) *platform.Frame {
	return &platform.Frame{
		ScreenWidth:  700,
		ScreenHeight: 1400,
		Windows:      []model.Window{{App: app, Active: true, Root: root.AsNode()}},
	}
}

func TestCollector_Structured(t *testing.T) {
	c := NewCollector(stubSource{frame: frameOf("com.tencent.mobileqq", qqRoot())}, DefaultHeuristics(), nil)
	r := c.Capture(context.Background())

	assert.Equal(t, "com.tencent.mobileqq", r.App)
	require.Len(t, r.Messages, 3)
	assert.Equal(t, model.ChatMessage{Sender: "Alice", Content: "hi"}, r.Messages[0])
	assert.Equal(t, model.ChatMessage{Sender: "me", Content: "ok", IsFromSelf: true}, r.Messages[1])
	// The repeated line is kept as a message but not repeated in the context.
	assert.Equal(t, "[Alice]: hi\n[me]: ok", r.RawContext)
	assert.Contains(t, r.DebugInfo, "profile: qq")
}

func TestCollector_StructuredDisabled(t *testing.T) {
	h := DefaultHeuristics()
	h.Structured = false
	c := NewCollector(stubSource{frame: frameOf("com.tencent.mobileqq", qqRoot())}, h, nil)
	r := c.Capture(context.Background())
	assert.Empty(t, r.Messages)
	assert.Equal(t, "Alice\nhi\nok", r.RawContext)
}

func TestCollector_GenericForUnknownApp(t *testing.T) {
	c := NewCollector(stubSource{frame: frameOf("com.whatsapp", qqRoot())}, DefaultHeuristics(), nil)
	r := c.Capture(context.Background())
	assert.Empty(t, r.Messages)
	assert.Equal(t, "Alice\nhi\nok", r.RawContext)
	assert.Equal(t, "com.whatsapp", r.App)
}

func TestCollector_WidthFallsBackToRootBounds(t *testing.T) {
	frame := frameOf("com.tencent.mobileqq", qqRoot())
	frame.ScreenWidth, frame.ScreenHeight = 0, 0
	c := NewCollector(stubSource{frame: frame}, DefaultHeuristics(), nil)
	r := c.Capture(context.Background())
	require.Len(t, r.Messages, 3)
	assert.True(t, r.Messages[1].IsFromSelf)
}

func TestCollector_UnavailableSourceIsEmpty(t *testing.T) {
	for _, src := range []platform.SnapshotSource{
		stubSource{err: platform.ErrNoWindow},
		stubSource{err: errors.New("permission revoked")},
		nil,
	} {
		r := NewCollector(src, DefaultHeuristics(), nil).Capture(context.Background())
		assert.True(t, r.IsEmpty())
		assert.NotEmpty(t, r.DebugInfo)
	}
}

func TestCollector_NoUsableWindow(t *testing.T) {
	frame := &platform.Frame{Windows: []model.Window{
		{App: "com.tencent.mm", Active: true, Root: (&model.Element{}).AsNode()},
		{App: "com.android.systemui"},
	}}
	r := NewCollector(stubSource{frame: frame}, DefaultHeuristics(), nil).Capture(context.Background())
	assert.True(t, r.IsEmpty())
	assert.Contains(t, r.DebugInfo, "no valid root")
}

func TestCollector_EmptyActiveRootFallsBackToOtherWindow(t *testing.T) {
	frame := &platform.Frame{
		ScreenWidth: 700,
		Windows: []model.Window{
			{App: "com.tencent.mm", Active: true, Root: (&model.Element{}).AsNode()},
			{App: "com.tencent.mobileqq", Root: qqRoot().AsNode()},
		},
	}
	r := NewCollector(stubSource{frame: frame}, DefaultHeuristics(), nil).Capture(context.Background())
	assert.Equal(t, "com.tencent.mobileqq", r.App)
	assert.Len(t, r.Messages, 3)
}

func TestCollector_PanicIsContained(t *testing.T) {
	r := NewCollector(stubSource{panic: true}, DefaultHeuristics(), nil).Capture(context.Background())
	assert.True(t, r.IsEmpty())
	assert.Contains(t, r.DebugInfo, "accessibility service died")
}

func TestCollector_CustomProfiles(t *testing.T) {
	custom := []Profile{{Name: "custom", Apps: []string{"org.example.chat"}, ContentID: "9u", SenderLabelID: "nick", TitleID: "si5"}}
	c := NewCollector(stubSource{frame: frameOf("org.example.chat", qqRoot())}, DefaultHeuristics(), nil).WithProfiles(custom)
	r := c.Capture(context.Background())
	assert.Len(t, r.Messages, 3)
	assert.Contains(t, r.DebugInfo, "profile: custom")
}

func TestCollector_Labels(t *testing.T) {
	c := NewCollector(nil, DefaultHeuristics(), nil)
	assert.Equal(t, model.Labels{Self: "me", Peer: "peer"}, c.Labels())
}
