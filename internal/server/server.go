// Package server exposes capture, merge and reply suggestion as MCP tools.
package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/reply"
)

// Config holds MCP server configuration.
type Config struct {
	Name       string
	Version    string
	Heuristics capture.Heuristics
	Replies    reply.Provider
	ReplyLimit int
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// Server wraps the MCP server with the collaborators its tools use.
type Server struct {
	cfg      Config
	sessions *SessionCache
	logger   *slog.Logger
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all chatscribe tools.
func New(cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "chatscribe"
	}
	if cfg.Replies == nil {
		cfg.Replies = reply.Static{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionCache(cfg.SessionTTL),
		logger:   cfg.Logger,
		mcp:      mcpserver.NewMCPServer(cfg.Name, cfg.Version),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server with the given transport.
func (s *Server) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.logger.Info("serving MCP", "transport", transport, "port", port)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *Server) registerTools() {
	// collect
	s.mcp.AddTool(
		mcp.NewTool("collect",
			mcp.WithDescription("Capture one frame of a recorded chat session and reconstruct its messages. Returns messages, the bounded transcript (raw_context) and debug info."),
			mcp.WithString("session", mcp.Required(), mcp.Description("Path to a recorded session file (YAML or JSON)")),
			mcp.WithNumber("frame", mcp.Description("Frame index, 0 is the newest screen (default 0)")),
		),
		s.handleCollect,
	)

	// merge
	s.mcp.AddTool(
		mcp.NewTool("merge",
			mcp.WithDescription("Merge a batch of older messages into an accumulated transcript, dropping the overlap between them."),
			mcp.WithString("accumulated", mcp.Description("JSON array of {sender, content, self} messages gathered so far")),
			mcp.WithString("batch", mcp.Description("JSON array of messages from the newest capture, which shows older history")),
		),
		s.handleMerge,
	)

	// transcript
	s.mcp.AddTool(
		mcp.NewTool("transcript",
			mcp.WithDescription("Render messages as the bounded '[sender]: content' transcript handed to reply providers."),
			mcp.WithString("messages", mcp.Required(), mcp.Description("JSON array of {sender, content, self} messages")),
			mcp.WithString("self_label", mcp.Description("Label for self-authored messages (default from settings)")),
			mcp.WithString("peer_label", mcp.Description("Label for messages with no sender (default from settings)")),
		),
		s.handleTranscript,
	)

	// suggest
	s.mcp.AddTool(
		mcp.NewTool("suggest",
			mcp.WithDescription("Suggest replies for a transcript. Each option has a style title and text."),
			mcp.WithString("transcript", mcp.Required(), mcp.Description("Conversation transcript, one '[sender]: content' line per message")),
			mcp.WithNumber("limit", mcp.Description("Number of suggestions to ask for")),
		),
		s.handleSuggest,
	)
}
