package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/platform"
	_ "github.com/mj1618/chatscribe/internal/platform/replay"
	"github.com/mj1618/chatscribe/internal/reply"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seeker is implemented by sources that can jump to a recorded frame.
type seeker interface {
	Seek(i int) error
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("session", "", "Recorded session file (YAML or JSON)")
	cmd.Flags().String("backend", "replay", "Host backend serving the session")
	cmd.Flags().Int("frame", 0, "Frame to start from, 0 is the newest screen")
}

// openSource opens the backend named by --backend on --session and seeks
// to --frame.
func openSource(cmd *cobra.Command) (*platform.Provider, error) {
	session, _ := cmd.Flags().GetString("session")
	backend, _ := cmd.Flags().GetString("backend")
	frame, _ := cmd.Flags().GetInt("frame")
	if session == "" {
		return nil, fmt.Errorf("--session is required")
	}

	provider, err := platform.Open(backend, session)
	if err != nil {
		return nil, err
	}
	if frame != 0 {
		s, ok := provider.Source.(seeker)
		if !ok {
			return nil, fmt.Errorf("backend %s cannot seek to frame %d", backend, frame)
		}
		if err := s.Seek(frame); err != nil {
			return nil, err
		}
	}
	return provider, nil
}

func newCollector(source platform.SnapshotSource) *capture.Collector {
	return capture.NewCollector(source, settings.CaptureHeuristics(), logger)
}

func replyProvider() reply.Provider {
	return reply.New(settings.Reply, logger)
}

func labels() model.Labels {
	h := settings.CaptureHeuristics()
	return model.Labels{Self: h.SelfLabel, Peer: h.PeerPlaceholder}
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// readMessages loads messages from a YAML/JSON list or from an object with
// a messages key (such as the output of collect).
func readMessages(path string) ([]model.ChatMessage, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var list []model.ChatMessage
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Messages []model.ChatMessage `yaml:"messages"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse messages in %s: %w", path, err)
	}
	return wrapped.Messages, nil
}
