// Package server exposes the portfolio assistant over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
	"github.com/adarsh8081/adarsh-portfolio/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server with its routes and lifecycle management.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	svc    *service.Service
	logger *slog.Logger
}

// New builds the server and registers all routes.
func New(cfg config.Config, svc *service.Service, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		engine: engine,
		svc:    svc,
		logger: logger,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: engine,
		},
	}

	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	s.setupRoutes()
	return s
}

// Engine returns the gin engine, used by tests to drive requests directly.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/portfolio", s.handlePortfolio)
	s.engine.POST("/search", s.handleSearch)
	s.engine.POST("/chat", s.handleChat)
	s.engine.GET("/audio/:id", s.handleAudio)
	s.engine.POST("/refresh", s.handleRefresh)
	s.engine.GET("/stats", s.handleStats)
}

func corsConfig(allowOrigins string) cors.Config {
	c := cors.DefaultConfig()
	origins := strings.Split(allowOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return c
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down http server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
