// Package embedding provides text embedding generation with multiple backend
// support.
package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder generates fixed-dimension vectors for text. Deterministic for
// identical inputs within one process lifetime.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. More efficient
	// than repeated Embed calls for bulk indexing.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model name.
	Model() string

	// Dimension returns the embedding vector dimension.
	Dimension() int
}

// ProviderType identifies the embedding provider.
type ProviderType string

const (
	// ProviderOllama uses a local Ollama server for embeddings.
	ProviderOllama ProviderType = "ollama"

	// ProviderOpenAI uses the OpenAI embeddings API.
	ProviderOpenAI ProviderType = "openai"
)

// Config holds configuration for creating an Embedder.
type Config struct {
	Provider ProviderType

	// Model is the embedding model name (provider-specific).
	// Ollama: "all-minilm" (384-dim), "nomic-embed-text" (768-dim)
	// OpenAI: "text-embedding-3-small" (1536-dim)
	Model string

	// Dimension is the required output dimension. Vectors of any other size
	// are rejected rather than silently mixed into the index.
	Dimension int

	OpenAIAPIKey string
	OllamaHost   string
}

// langchainEmbedder wraps a langchaingo embedder with dimension validation.
type langchainEmbedder struct {
	model     embeddings.Embedder
	modelName string
	dimension int
}

// New creates an Embedder based on the provided configuration.
func New(cfg Config) (Embedder, error) {
	var model embeddings.Embedder

	switch cfg.Provider {
	case ProviderOllama, "":
		llm, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create ollama embedder: %w", err)
		}

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithEmbeddingModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}

	return &langchainEmbedder{
		model:     model,
		modelName: cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

func (e *langchainEmbedder) Model() string {
	return e.modelName
}

func (e *langchainEmbedder) Dimension() int {
	return e.dimension
}

func (e *langchainEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vectors, err := e.model.EmbedDocuments(ctx, []string{text})
	duration := time.Since(start)

	if err != nil {
		slog.Warn("embedding failed", "model", e.modelName, "text_len", len(text), "duration_ms", duration.Milliseconds(), "error", err)
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vector := vectors[0]
	if len(vector) != e.dimension {
		return nil, fmt.Errorf("dimension mismatch: got %d, want %d (model: %s)", len(vector), e.dimension, e.modelName)
	}

	return vector, nil
}

func (e *langchainEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := e.model.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("count mismatch: got %d, want %d", len(vectors), len(texts))
	}

	for i, v := range vectors {
		if len(v) != e.dimension {
			return nil, fmt.Errorf("embedding %d dimension mismatch: got %d, want %d", i, len(v), e.dimension)
		}
	}

	return vectors, nil
}

// Probe checks whether the embedding backend is actually reachable by
// embedding a short sentinel text. Resolves the embedding capability flag at
// startup: a failed probe degrades retrieval to lexical search.
func Probe(ctx context.Context, e Embedder, timeout time.Duration) bool {
	if e == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := e.Embed(ctx, "ping"); err != nil {
		slog.Warn("embedding backend unavailable", "model", e.Model(), "error", err)
		return false
	}
	return true
}
