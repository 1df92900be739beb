// Package service wires retrieval, generation and speech into the portfolio
// question-answering service.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/adarsh8081/adarsh-portfolio/internal/index"
	"github.com/adarsh8081/adarsh-portfolio/internal/llm"
	"github.com/adarsh8081/adarsh-portfolio/internal/metrics"
	"github.com/adarsh8081/adarsh-portfolio/internal/prompt"
	"github.com/adarsh8081/adarsh-portfolio/internal/record"
	"github.com/adarsh8081/adarsh-portfolio/internal/retrieval"
	"github.com/adarsh8081/adarsh-portfolio/internal/speech"
)

// retrieveLimit is how many records ground a chat answer.
const retrieveLimit = 5

// maxSources caps the citations returned with an answer.
const maxSources = 3

// Service is the explicit service context: every capability is resolved once
// at construction and held here, no process-wide singletons.
type Service struct {
	source    record.Source
	idx       *index.Index // nil when the embedding backend is off
	retriever *retrieval.Retriever
	generator *llm.Generator
	speech    *speech.Dispatcher
	metrics   *metrics.Collector
	logger    *slog.Logger

	embeddingReady atomic.Bool
}

// New assembles a Service from its components. idx may be nil; the retriever
// then serves lexical matches only.
func New(
	source record.Source,
	idx *index.Index,
	retriever *retrieval.Retriever,
	generator *llm.Generator,
	dispatcher *speech.Dispatcher,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Service{
		source:    source,
		idx:       idx,
		retriever: retriever,
		generator: generator,
		speech:    dispatcher,
		metrics:   collector,
		logger:    logger,
	}
}

// Source is one citation attached to an answer.
type Source struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"type"`
}

// ChatResult is the synchronous answer to one question.
type ChatResult struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	AudioURL       string   `json:"audio_url,omitempty"`
	ConversationID string   `json:"conversation_id"`
}

// Search returns at most limit records ranked against the query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]retrieval.Hit, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1, got %d", limit)
	}

	start := time.Now()
	hits, err := s.retriever.Retrieve(ctx, query, limit)
	s.metrics.RecordTiming(metrics.OpSearch, time.Since(start))

	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	return hits, nil
}

// Chat answers a question grounded in retrieved records. The answer is
// always non-empty; ML backend failures degrade tier by tier instead of
// failing the request. With useVoice and a live speech backend the result
// carries an audio reference that resolves once synthesis completes.
func (s *Service) Chat(ctx context.Context, question string, history []prompt.Turn, useVoice bool) (ChatResult, error) {
	if question == "" {
		return ChatResult{}, fmt.Errorf("question is required")
	}

	hits, err := s.retriever.Retrieve(ctx, question, retrieveLimit)
	if err != nil {
		// Retrieval trouble degrades to an ungrounded answer.
		s.logger.Warn("retrieval failed during chat", "error", err)
		hits = nil
	}

	promptText := prompt.Assemble(hits, history, question)
	contextTexts := prompt.ContextLines(hits)

	start := time.Now()
	answer := s.generator.Generate(ctx, promptText, question, contextTexts)
	s.metrics.RecordTiming(metrics.OpGenerate, time.Since(start))

	result := ChatResult{
		Answer:         answer,
		Sources:        sourcesFrom(hits),
		ConversationID: uuid.New().String(),
	}

	if useVoice && s.speech.Available() {
		artifactID := uuid.New().String()
		s.speech.Enqueue(answer, artifactID)
		result.AudioURL = "/audio/" + artifactID
	}

	return result, nil
}

func sourcesFrom(hits []retrieval.Hit) []Source {
	sources := make([]Source, 0, maxSources)
	for _, hit := range hits {
		if len(sources) >= maxSources {
			break
		}
		sources = append(sources, Source{
			ID:       hit.Record.ID,
			Title:    hit.Record.Title,
			Category: hit.Record.Category,
		})
	}
	return sources
}

// Audio returns a synthesized artifact by id.
func (s *Service) Audio(id string) (speech.Artifact, bool) {
	return s.speech.Fetch(id)
}

// Refresh re-reads the record source and rebuilds the index wholesale. On a
// source error the previous record set stays installed.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordTiming(metrics.OpRefresh, time.Since(start))
	}()

	raws, err := s.source.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	records := record.Normalize(raws)
	s.retriever.SetRecords(records)

	if s.idx != nil {
		embedStart := time.Now()
		err := s.idx.Rebuild(ctx, records)
		s.metrics.RecordTiming(metrics.OpEmbedding, time.Since(embedStart))

		if err != nil {
			// Lexical retrieval keeps working off the fresh snapshot.
			s.embeddingReady.Store(false)
			s.logger.Warn("index rebuild failed, serving lexical search", "error", err)
		} else {
			s.embeddingReady.Store(true)
		}
	}

	s.logger.Info("record set refreshed", "count", len(records), "semantic", s.embeddingReady.Load())
	return len(records), nil
}

// Records returns the current normalized record set.
func (s *Service) Records() []record.Record {
	return s.retriever.Records()
}

// Stats describes the service's capability and cache state.
type Stats struct {
	PortfolioItems    int              `json:"portfolio_items"`
	GenerationBackend string           `json:"generation_backend"`
	GenerationModel   string           `json:"generation_model,omitempty"`
	MLAvailable       bool             `json:"ml_available"`
	LLMAvailable      bool             `json:"llm_available"`
	TTSAvailable      bool             `json:"tts_available"`
	ArtifactCacheSize int              `json:"artifact_cache_size"`
	Mode              string           `json:"mode"`
	Metrics           metrics.Snapshot `json:"metrics"`
}

// Stats returns current service statistics, including which degraded modes
// are active.
func (s *Service) Stats() Stats {
	st := Stats{
		PortfolioItems:    len(s.Records()),
		GenerationBackend: string(s.generator.Backend()),
		GenerationModel:   s.generator.ModelName(),
		MLAvailable:       s.embeddingReady.Load(),
		LLMAvailable:      s.generator.Backend() != llm.BackendRuleBased,
		TTSAvailable:      s.speech.Available(),
		ArtifactCacheSize: s.speech.Len(),
		Metrics:           s.metrics.Snapshot(),
	}
	if st.MLAvailable {
		st.Mode = "full"
	} else {
		st.Mode = "fallback"
	}
	return st
}
