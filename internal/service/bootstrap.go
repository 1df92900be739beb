package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
	"github.com/adarsh8081/adarsh-portfolio/internal/embedding"
	"github.com/adarsh8081/adarsh-portfolio/internal/index"
	"github.com/adarsh8081/adarsh-portfolio/internal/llm"
	"github.com/adarsh8081/adarsh-portfolio/internal/metrics"
	"github.com/adarsh8081/adarsh-portfolio/internal/record"
	"github.com/adarsh8081/adarsh-portfolio/internal/retrieval"
	"github.com/adarsh8081/adarsh-portfolio/internal/speech"
)

// probeTimeout bounds the startup embedding capability check.
const probeTimeout = 10 * time.Second

// Bootstrap builds a Service from configuration. Every optional backend that
// fails to come up is logged and skipped; the service always starts, in a
// degraded mode if it must.
func Bootstrap(ctx context.Context, cfg config.Config, logger *slog.Logger) *Service {
	var source record.Source
	if cfg.DatabaseURL != "" {
		pg, err := record.NewPostgresSource(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Warn("database unavailable, serving static records", "error", err)
		} else {
			source = pg
		}
	}
	if source == nil {
		source = record.NewStaticSource()
	}

	var idx *index.Index
	embedder, err := embedding.New(embedding.Config{
		Provider:     embedding.ProviderType(cfg.EmbedProvider),
		Model:        cfg.EmbedModel,
		Dimension:    cfg.EmbedDimension,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OllamaHost:   cfg.OllamaHost,
	})
	if err != nil {
		logger.Warn("embedding backend unavailable, semantic search disabled", "error", err)
	} else if !embedding.Probe(ctx, embedder, probeTimeout) {
		logger.Warn("embedding probe failed, semantic search disabled",
			"provider", cfg.EmbedProvider, "model", cfg.EmbedModel)
	} else {
		idx = index.New(embedder)
		logger.Info("embedding backend ready", "provider", cfg.EmbedProvider, "model", cfg.EmbedModel)
	}

	retriever := retrieval.New(idx, logger)

	generator := llm.Resolve(ctx, cfg, logger)

	collector := metrics.NewCollector()

	var synth speech.Synthesizer
	if cfg.SpeechURL != "" {
		synth, err = speech.NewHTTPClient(cfg.SpeechURL, cfg.SpeechAPIKey, cfg.SpeechVoice)
		if err != nil {
			logger.Warn("speech backend misconfigured, voice disabled", "error", err)
			synth = nil
		}
	}
	dispatcher := speech.NewDispatcher(synth, cfg.MaxArtifacts, collector, logger)

	svc := New(source, idx, retriever, generator, dispatcher, collector, logger)

	if _, err := svc.Refresh(ctx); err != nil {
		logger.Warn("initial record load failed", "error", err)
	}

	return svc
}

// Health reports liveness plus which capability tiers are up.
type Health struct {
	Status         string `json:"status"`
	MLAvailable    bool   `json:"ml_available"`
	LLMAvailable   bool   `json:"llm_available"`
	TTSAvailable   bool   `json:"tts_available"`
	PortfolioItems int    `json:"portfolio_items"`
	Mode           string `json:"mode"`
}

// Health returns the current health snapshot. The service is "ok" whenever
// the process is serving, regardless of which backends are degraded.
func (s *Service) Health() Health {
	st := s.Stats()
	return Health{
		Status:         "ok",
		MLAvailable:    st.MLAvailable,
		LLMAvailable:   st.LLMAvailable,
		TTSAvailable:   st.TTSAvailable,
		PortfolioItems: st.PortfolioItems,
		Mode:           st.Mode,
	}
}

// Close releases background resources.
func (s *Service) Close() {
	s.speech.Close()
}
