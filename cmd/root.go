package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mj1618/chatscribe/internal/config"
	"github.com/mj1618/chatscribe/internal/output"
	"github.com/mj1618/chatscribe/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatscribe",
	Short: "Reconstruct chat transcripts from on-screen UI trees",
	Long: `chatscribe reads chat screens through an accessibility tree, reconstructs
who said what, merges screens captured while scrolling back through history,
and hands the finished transcript to a reply-suggestion provider.`,
	SilenceUsage: true,
}

// settings is loaded from --config before any subcommand runs.
var settings = config.Default()

// logger writes diagnostics to stderr; stdout is reserved for results.
var logger = slog.Default()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		lvl, err := parseLevel(level)
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(logger)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		settings = *cfg
		logger.Debug("settings loaded", "config", path)
		return nil
	}
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unsupported log level: %s (use debug, info, warn, or error)", s)
	}
	return lvl, nil
}
