package cmd

import (
	"fmt"

	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/output"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a batch of older messages into an accumulated transcript",
	Long: `Merge the messages of a newer capture (which shows older history after a
backward scroll) into the messages gathered so far. The longest run where the
batch's tail matches the accumulated head is kept once.

Each file holds a YAML or JSON list of {sender, content, self} messages, or
the output of collect. Use - to read one of them from stdin.

Examples:
  chatscribe merge --accumulated acc.yaml --batch batch.yaml
  chatscribe collect --session s.yaml --frame 1 | chatscribe merge --accumulated acc.yaml --batch -`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().String("accumulated", "", "Messages gathered so far")
	mergeCmd.Flags().String("batch", "", "Messages from the newest capture")
}

func runMerge(cmd *cobra.Command, args []string) error {
	accPath, _ := cmd.Flags().GetString("accumulated")
	batchPath, _ := cmd.Flags().GetString("batch")
	if accPath == "" && batchPath == "" {
		return fmt.Errorf("at least one of --accumulated or --batch is required")
	}
	if accPath == "-" && batchPath == "-" {
		return fmt.Errorf("only one of --accumulated and --batch can read stdin")
	}

	var accumulated, batch []model.ChatMessage
	var err error
	if accPath != "" {
		if accumulated, err = readMessages(accPath); err != nil {
			return err
		}
	}
	if batchPath != "" {
		if batch, err = readMessages(batchPath); err != nil {
			return err
		}
	}

	merged := model.Merge(accumulated, batch)
	return output.Print(output.MergeResult{
		Added:      len(merged) - len(accumulated),
		Messages:   merged,
		Transcript: model.BuildContext(merged, labels()),
	})
}
