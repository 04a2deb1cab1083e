package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/output"
	"github.com/mj1618/chatscribe/internal/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sessionYAML = `
app: com.tencent.mobileqq
screen: {width: 700, height: 1400}
frames:
  - root:
      c: android.widget.FrameLayout
      ch:
        - {id: "com.tencent.mobileqq:id/si5", t: Alice, b: [300, 5, 100, 40]}
        - {id: "com.tencent.mobileqq:id/9u", t: "see you at 7", b: [50, 300, 200, 40]}
        - {id: "com.tencent.mobileqq:id/9u", t: "great", b: [500, 400, 100, 40]}
  - root:
      c: android.widget.FrameLayout
      ch:
        - {id: "com.tencent.mobileqq:id/si5", t: Alice, b: [300, 5, 100, 40]}
        - {id: "com.tencent.mobileqq:id/9u", t: "dinner tonight?", b: [50, 300, 200, 40]}
`

func writeSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sessionYAML), 0o644))
	return path
}

func newTestServer(replies reply.Provider) *Server {
	return New(Config{
		Version:    "test",
		Heuristics: capture.DefaultHeuristics(),
		Replies:    replies,
		ReplyLimit: 3,
		SessionTTL: time.Minute,
	})
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestHandleCollect(t *testing.T) {
	s := newTestServer(nil)
	path := writeSession(t)

	res, err := s.handleCollect(context.Background(), call("collect", map[string]interface{}{"session": path}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got output.CaptureResult
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "com.tencent.mobileqq", got.App)
	assert.Equal(t, []model.ChatMessage{
		{Sender: "Alice", Content: "see you at 7"},
		{Sender: "me", Content: "great", IsFromSelf: true},
	}, got.Messages)

	res, err = s.handleCollect(context.Background(), call("collect", map[string]interface{}{"session": path, "frame": float64(1)}))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, 1, got.Frame)
	assert.Equal(t, "[Alice]: dinner tonight?", got.RawContext)
	assert.Equal(t, 1, s.sessions.Len())
}

func TestHandleCollect_Errors(t *testing.T) {
	s := newTestServer(nil)
	path := writeSession(t)

	for _, args := range []map[string]interface{}{
		{},
		{"session": filepath.Join(t.TempDir(), "missing.yaml")},
		{"session": path, "frame": float64(7)},
	} {
		res, err := s.handleCollect(context.Background(), call("collect", args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
	}
}

func TestHandleMerge(t *testing.T) {
	s := newTestServer(nil)
	args := map[string]interface{}{
		"accumulated": `[{"sender":"Alice","content":"m1"},{"sender":"me","content":"m2","self":true}]`,
		// Arrays are accepted as well as JSON strings.
		"batch": []interface{}{
			map[string]interface{}{"sender": "Alice", "content": "m0"},
			map[string]interface{}{"sender": "Alice", "content": "m1"},
		},
	}
	res, err := s.handleMerge(context.Background(), call("merge", args))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got output.MergeResult
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, 1, got.Added)
	assert.Equal(t, []model.ChatMessage{
		{Sender: "Alice", Content: "m0"},
		{Sender: "Alice", Content: "m1"},
		{Sender: "me", Content: "m2", IsFromSelf: true},
	}, got.Messages)
	assert.Equal(t, "[Alice]: m0\n[Alice]: m1\n[me]: m2", got.Transcript)
}

func TestHandleMerge_BadJSON(t *testing.T) {
	s := newTestServer(nil)
	res, err := s.handleMerge(context.Background(), call("merge", map[string]interface{}{"batch": "{not json"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleTranscript(t *testing.T) {
	s := newTestServer(nil)
	args := map[string]interface{}{
		"messages":   `[{"content":"hi"},{"sender":"ignored","content":"yo","self":true},{"content":"hi"}]`,
		"self_label": "我",
	}
	res, err := s.handleTranscript(context.Background(), call("transcript", args))
	require.NoError(t, err)
	assert.Equal(t, "[peer]: hi\n[我]: yo", text(t, res))
}

type failingProvider struct{}

func (failingProvider) Suggest(context.Context, string, int) ([]reply.Option, error) {
	return nil, errors.New("endpoint returned 401")
}

func TestHandleSuggest(t *testing.T) {
	s := newTestServer(reply.Static{})
	res, err := s.handleSuggest(context.Background(), call("suggest", map[string]interface{}{
		"transcript": "[Alice]: dinner tonight?",
		"limit":      float64(2),
	}))
	require.NoError(t, err)
	var got output.SuggestResult
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &got))
	assert.Len(t, got.Options, 2)

	s = newTestServer(failingProvider{})
	res, err = s.handleSuggest(context.Background(), call("suggest", map[string]interface{}{"transcript": "[Alice]: hi"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "401")
}

func TestServeUnsupportedTransport(t *testing.T) {
	assert.Error(t, newTestServer(nil).Serve("carrier-pigeon", 0))
}
