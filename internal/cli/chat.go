package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adarsh8081/adarsh-portfolio/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive terminal chat with the portfolio assistant.

The last three exchanges are carried as conversation context for follow-up
questions. Ctrl+C quits.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := tui.Run(svc); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}
