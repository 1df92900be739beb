package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show service capability and record statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	st := svc.Stats()

	fmt.Printf("Mode:               %s\n", st.Mode)
	fmt.Printf("Portfolio items:    %d\n", st.PortfolioItems)
	fmt.Printf("Generation backend: %s", st.GenerationBackend)
	if st.GenerationModel != "" {
		fmt.Printf(" (%s)", st.GenerationModel)
	}
	fmt.Println()
	fmt.Printf("Semantic search:    %s\n", available(st.MLAvailable))
	fmt.Printf("LLM answers:        %s\n", available(st.LLMAvailable))
	fmt.Printf("Voice synthesis:    %s\n", available(st.TTSAvailable))

	if verbose && len(st.Metrics.Operations) > 0 {
		fmt.Println("\nOperations:")
		for name, op := range st.Metrics.Operations {
			fmt.Printf("  %-12s count=%d avg=%.1fms\n", name, op.Count, op.AvgTimeMs)
		}
	}

	return nil
}

func available(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}
