package cmd

import (
	"time"

	"github.com/mj1618/chatscribe/internal/output"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Capture one screen and reconstruct its messages",
	Long: `Capture the current screen of a session once and print the reconstructed
messages, the bounded transcript and debug info.

Recognised chat apps get sender-attributed messages; every other app falls
back to a de-duplicated list of visible text. At most the last 20 messages
are printed unless --all is given.

Examples:
  chatscribe collect --session qq-private.yaml
  chatscribe collect --session qq-group.yaml --frame 2 --format json`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
	addSourceFlags(collectCmd)
	collectCmd.Flags().Bool("all", false, "Print every message instead of the last 20")
}

func runCollect(cmd *cobra.Command, args []string) error {
	provider, err := openSource(cmd)
	if err != nil {
		return err
	}
	frame, _ := cmd.Flags().GetInt("frame")
	all, _ := cmd.Flags().GetBool("all")

	result := newCollector(provider.Source).Capture(cmd.Context())
	if !all {
		result = result.ForDisplay()
	}
	return output.Print(output.CaptureResult{
		TS:               time.Now().Unix(),
		Frame:            frame,
		CollectionResult: result,
	})
}
