package cmd

import (
	"time"

	"github.com/mj1618/chatscribe/internal/server"
	"github.com/mj1618/chatscribe/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing chatscribe tools",
	Long: `Start a Model Context Protocol (MCP) server exposing collect, merge,
transcript and suggest as tools. AI agents can call tools directly without
shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  chatscribe serve
  chatscribe serve --transport streamable-http --port 8080
  chatscribe serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 5000, "Session file cache TTL in milliseconds (0 to disable)")
}

func newServer(cmd *cobra.Command) *server.Server {
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	return server.New(server.Config{
		Name:       "chatscribe",
		Version:    version.Version,
		Heuristics: settings.CaptureHeuristics(),
		Replies:    replyProvider(),
		ReplyLimit: settings.Reply.Limit,
		SessionTTL: time.Duration(cacheTTLMs) * time.Millisecond,
		Logger:     logger,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	return newServer(cmd).Serve(transport, port)
}
