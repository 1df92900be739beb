// Package cli provides the command-line interface for the portfolio assistant.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
	"github.com/adarsh8081/adarsh-portfolio/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configFile string

	// Global config and service, built in PersistentPreRunE
	cfg        config.Config
	svc        *service.Service
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio assistant over a normalized record store",
	Long: `Portfolio is a question-answering assistant over portfolio content
(projects, posts, skills, services, testimonials, achievements).

Records are loaded from Postgres when DATABASE_URL is set and from built-in
sample data otherwise. Search is semantic when an embedding backend is
reachable and lexical otherwise; answers come from the best available
generation backend and degrade down to rule-based responses.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		_ = godotenv.Load()
		cfg = config.Load()
		if configFile != "" {
			if err := config.LoadFile(configFile, &cfg); err != nil {
				return fmt.Errorf("load config file: %w", err)
			}
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		logCleanup = cleanup

		svc = service.Bootstrap(cmd.Context(), cfg, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if svc != nil {
			svc.Close()
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statsCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
