// Package main provides the entry point for the portfolio assistant HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
	"github.com/adarsh8081/adarsh-portfolio/internal/server"
	"github.com/adarsh8081/adarsh-portfolio/internal/service"
)

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	if *configFile != "" {
		if err := config.LoadFile(*configFile, &cfg); err != nil {
			os.Stderr.WriteString("failed to load config file: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	// Dual output: stderr text + file JSON when a log file is configured.
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = cleanup() }()

	logger.Info("portfolio server starting",
		"version", version,
		"port", cfg.Port,
		"embed_provider", cfg.EmbedProvider,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	svc := service.Bootstrap(ctx, cfg, logger)
	defer svc.Close()

	srv := server.New(cfg, svc, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
