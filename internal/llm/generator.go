// Package llm produces grounded answers, selecting one generation backend at
// startup and degrading to a rule-based responder when it fails.
package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
)

// Backend identifies the active generation backend.
type Backend string

const (
	BackendGemini    Backend = "gemini"
	BackendOpenAI    Backend = "openai"
	BackendOllama    Backend = "ollama"
	BackendRuleBased Backend = "rule-based"
)

// Generator produces answer text. Exactly one backend is active per process
// lifetime; the rule-based responder is the terminal tier and is total, so
// Generate always returns non-empty text.
type Generator struct {
	llm         llms.Model
	backend     Backend
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// Resolve picks the highest-priority backend whose credentials are present
// and whose client constructs: Gemini, then OpenAI, then local Ollama, then
// rule-based. Resolution happens once; it is not re-evaluated per request.
func Resolve(ctx context.Context, cfg config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		backend:     BackendRuleBased,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.GenerateTimeout,
		logger:      logger,
	}

	if cfg.GeminiAPIKey != "" {
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
		if err == nil {
			g.llm = model
			g.backend = BackendGemini
			g.model = cfg.GeminiModel
			logger.Info("generation backend selected", "backend", g.backend, "model", g.model)
			return g
		}
		logger.Warn("gemini backend unavailable", "error", err)
	}

	if cfg.OpenAIAPIKey != "" {
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
		)
		if err == nil {
			g.llm = model
			g.backend = BackendOpenAI
			g.model = cfg.OpenAIModel
			logger.Info("generation backend selected", "backend", g.backend, "model", g.model)
			return g
		}
		logger.Warn("openai backend unavailable", "error", err)
	}

	if cfg.OllamaModel != "" {
		model, err := ollama.New(
			ollama.WithModel(cfg.OllamaModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err == nil {
			g.llm = model
			g.backend = BackendOllama
			g.model = cfg.OllamaModel
			logger.Info("generation backend selected", "backend", g.backend, "model", g.model)
			return g
		}
		logger.Warn("ollama backend unavailable", "error", err)
	}

	logger.Info("generation backend selected", "backend", g.backend)
	return g
}

// newWithModel builds a Generator over an existing llms.Model (for tests).
func newWithModel(model llms.Model, backend Backend, timeout time.Duration) *Generator {
	return &Generator{
		llm:         model,
		backend:     backend,
		maxTokens:   300,
		temperature: 0.7,
		timeout:     timeout,
		logger:      slog.Default(),
	}
}

// Backend returns the active backend tag.
func (g *Generator) Backend() Backend {
	return g.backend
}

// ModelName returns the active model name, empty for the rule-based tier.
func (g *Generator) ModelName() string {
	return g.model
}

// Generate produces an answer for the prompt. Backend failures (timeouts,
// API errors, empty responses) are caught here and routed to the rule-based
// responder; the result is always non-empty text.
func (g *Generator) Generate(ctx context.Context, promptText, question string, contextTexts []string) string {
	if g.llm == nil {
		return RuleAnswer(question, contextTexts)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	answer, err := llms.GenerateFromSinglePrompt(ctx, g.llm, promptText,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		g.logger.Warn("generation failed, using rule-based answer", "backend", g.backend, "error", err)
		return RuleAnswer(question, contextTexts)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		g.logger.Warn("generation returned empty text, using rule-based answer", "backend", g.backend)
		return RuleAnswer(question, contextTexts)
	}

	return answer
}
