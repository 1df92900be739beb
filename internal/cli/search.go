package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search portfolio records without answer synthesis",
	Long: `Search portfolio records and print ranked matches.

Uses semantic search when the embedding backend is up and lexical substring
matching otherwise. Use 'ask' for a synthesized answer.

Examples:
  portfolio search "semantic search"
  portfolio search "react" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "max results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	hits, err := svc.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d. %s [%s] (score %.3f)\n", i+1, hit.Record.Title, hit.Record.Category, hit.Score)
		body := hit.Record.Body
		if len(body) > 100 {
			body = body[:100] + "..."
		}
		fmt.Printf("   %s\n", body)
		if verbose && len(hit.Record.Tags) > 0 {
			fmt.Printf("   Tags: %s\n", strings.Join(hit.Record.Tags, ", "))
		}
		fmt.Println()
	}

	return nil
}
