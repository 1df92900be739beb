package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-read the record source and rebuild the search index",
	RunE:  runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	count, err := svc.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	fmt.Printf("Indexed %d records.\n", count)
	return nil
}
