package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/chatscribe/internal/output"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest replies for a transcript",
	Long: `Ask the reply provider for suggestions. The transcript comes from
--transcript (- for stdin) or from one capture of --session.

With reply.api_key configured the OpenAI-compatible endpoint at
reply.base_url is used; otherwise canned offline replies are returned.

Examples:
  chatscribe suggest --transcript "[Alice]: dinner tonight?"
  chatscribe suggest --session qq-private.yaml --limit 2
  CHATSCRIBE_REPLY_API_KEY=sk-... chatscribe suggest --transcript - < chat.txt`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	addSourceFlags(suggestCmd)
	suggestCmd.Flags().String("transcript", "", "Transcript text, - for stdin")
	suggestCmd.Flags().Int("limit", 0, "Number of suggestions (default from settings)")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	transcript, _ := cmd.Flags().GetString("transcript")
	session, _ := cmd.Flags().GetString("session")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = settings.Reply.Limit
	}

	switch {
	case transcript != "" && session != "":
		return fmt.Errorf("use either --transcript or --session, not both")
	case transcript == "-":
		data, err := readInput("-")
		if err != nil {
			return err
		}
		transcript = strings.TrimSpace(string(data))
	case session != "":
		provider, err := openSource(cmd)
		if err != nil {
			return err
		}
		transcript = newCollector(provider.Source).Capture(cmd.Context()).RawContext
	case transcript == "":
		return fmt.Errorf("one of --transcript or --session is required")
	}

	opts, err := replyProvider().Suggest(cmd.Context(), transcript, limit)
	if err != nil {
		return err
	}
	return output.Print(output.SuggestResult{Transcript: transcript, Options: opts})
}
