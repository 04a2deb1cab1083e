package gesture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		in   string
		want EventKind
	}{
		{"down", Down},
		{" Move ", Move},
		{"UP", Up},
		{"cancel", Cancel},
	}
	for _, tt := range tests {
		got, err := ParseEventKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseEventKind("press")
	assert.Error(t, err)
}

func TestScriptYAML(t *testing.T) {
	src := `
steps:
  - {after: 0s, kind: down, x: 10, y: 20}
  - {after: 1.5s, kind: up}
`
	var s Script
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	require.Len(t, s.Steps, 2)
	assert.Equal(t, 1500*time.Millisecond, s.Steps[1].After)
	assert.NoError(t, s.Validate())
}

func TestScriptValidate(t *testing.T) {
	assert.Error(t, Script{Steps: []Step{{Kind: "tap"}}}.Validate())
	assert.Error(t, Script{Steps: []Step{
		{After: time.Second, Kind: "down"},
		{After: 0, Kind: "up"},
	}}.Validate())
}

func TestScriptPlay(t *testing.T) {
	s := Script{Steps: []Step{
		{After: 0, Kind: "down", X: 1, Y: 2},
		{After: 20 * time.Millisecond, Kind: "up", X: 1, Y: 2},
	}}
	out := make(chan PointerEvent, 4)
	start := time.Now()
	require.NoError(t, s.Play(context.Background(), out))

	var got []PointerEvent
	for ev := range out {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, Down, got[0].Kind)
	assert.Equal(t, Up, got[1].Kind)
	assert.GreaterOrEqual(t, got[1].At.Sub(start), 20*time.Millisecond)
}

func TestScriptPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan PointerEvent)
	err := Script{Steps: []Step{{After: time.Hour, Kind: "down"}}}.Play(ctx, out)
	assert.ErrorIs(t, err, context.Canceled)
	_, open := <-out
	assert.False(t, open)
}
