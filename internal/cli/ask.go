package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var askOutputFile string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and get a synthesized answer",
	Long: `Ask a question about the portfolio and get an answer grounded in the
matching records.

The answer comes from the best available generation backend (Gemini, OpenAI,
local Ollama) and degrades to a rule-based response when none is reachable.

Examples:
  portfolio ask "What projects are in the portfolio?"
  portfolio ask "What backend skills are covered?" -o answer.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askOutputFile, "output", "o", "", "write answer to file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	result, err := svc.Chat(cmd.Context(), args[0], nil, false)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	if askOutputFile != "" {
		if err := os.WriteFile(askOutputFile, []byte(result.Answer+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Answer written to %s\n", askOutputFile)
		return nil
	}

	fmt.Println(result.Answer)

	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range result.Sources {
			fmt.Printf("- %s [%s]\n", src.Title, src.Category)
		}
	}

	return nil
}
