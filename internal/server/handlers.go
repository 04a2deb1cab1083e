package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/output"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.YAMLString(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCollect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "session", "")
	frame := intParam(params, "frame", 0)
	if path == "" {
		return mcp.NewToolResultError("session parameter is required"), nil
	}

	host, err := s.sessions.Load(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := host.Seek(frame); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	host.WithLogger(s.logger)

	collector := capture.NewCollector(host, s.cfg.Heuristics, s.logger)
	result := collector.Capture(ctx).ForDisplay()
	return resultToText(output.CaptureResult{
		TS:               time.Now().Unix(),
		Frame:            frame,
		CollectionResult: result,
	})
}

func (s *Server) handleMerge(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	accumulated, err := messagesParam(params, "accumulated")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	batch, err := messagesParam(params, "batch")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	merged := model.Merge(accumulated, batch)
	return resultToText(output.MergeResult{
		Added:      len(merged) - len(accumulated),
		Messages:   merged,
		Transcript: model.BuildContext(merged, s.labels()),
	})
}

func (s *Server) handleTranscript(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msgs, err := messagesParam(params, "messages")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	labels := s.labels()
	labels.Self = stringParam(params, "self_label", labels.Self)
	labels.Peer = stringParam(params, "peer_label", labels.Peer)

	return mcp.NewToolResultText(model.BuildContext(msgs, labels)), nil
}

func (s *Server) handleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	transcript := stringParam(params, "transcript", "")
	limit := intParam(params, "limit", s.cfg.ReplyLimit)

	opts, err := s.cfg.Replies.Suggest(ctx, transcript, limit)
	if err != nil {
		s.logger.Warn("suggest failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultToText(output.SuggestResult{Transcript: transcript, Options: opts})
}

func (s *Server) labels() model.Labels {
	return model.Labels{Self: s.cfg.Heuristics.SelfLabel, Peer: s.cfg.Heuristics.PeerPlaceholder}
}
