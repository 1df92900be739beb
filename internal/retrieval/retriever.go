// Package retrieval ranks portfolio records against a query, semantically
// when the embedding index is built and lexically otherwise.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/adarsh8081/adarsh-portfolio/internal/index"
	"github.com/adarsh8081/adarsh-portfolio/internal/record"
)

// LexicalScore is the constant score attached to lexical fallback matches.
// Scores are only comparable within one retrieval call.
const LexicalScore = 1.0

// Hit is one retrieval result.
type Hit struct {
	Record record.Record
	Score  float64
}

// Retriever answers queries from the embedding index when one is built and
// falls back to substring matching over the record snapshot otherwise.
type Retriever struct {
	idx     *index.Index
	records atomic.Pointer[[]record.Record]
	logger  *slog.Logger
}

// New creates a Retriever. idx may be nil when the embedding backend is
// unavailable; the retriever then serves lexical matches only.
func New(idx *index.Index, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Retriever{idx: idx, logger: logger}
	empty := []record.Record{}
	r.records.Store(&empty)
	return r
}

// SetRecords installs a new record snapshot for lexical matching. Called on
// every refresh alongside the index rebuild.
func (r *Retriever) SetRecords(records []record.Record) {
	snapshot := make([]record.Record, len(records))
	copy(snapshot, records)
	r.records.Store(&snapshot)
}

// Records returns the current record snapshot.
func (r *Retriever) Records() []record.Record {
	return *r.records.Load()
}

// Retrieve returns at most limit hits for the query, best first. A query
// matching nothing yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1, got %d", limit)
	}

	if r.idx != nil && r.idx.Ready() {
		hits, err := r.idx.Search(ctx, query, limit)
		if err == nil {
			out := make([]Hit, len(hits))
			for i, h := range hits {
				out[i] = Hit{Record: h.Record, Score: h.Score}
			}
			return out, nil
		}
		// A failing embedding backend degrades to lexical matching rather
		// than failing the request.
		r.logger.Warn("semantic search failed, falling back to lexical", "error", err)
	}

	return r.lexical(query, limit), nil
}

// lexical scans records in storage order and matches on lowercased substring
// containment in body, title, or any tag.
func (r *Retriever) lexical(query string, limit int) []Hit {
	needle := strings.ToLower(query)
	hits := []Hit{}

	for _, rec := range r.Records() {
		if len(hits) >= limit {
			break
		}
		if matches(rec, needle) {
			hits = append(hits, Hit{Record: rec, Score: LexicalScore})
		}
	}
	return hits
}

func matches(rec record.Record, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Body), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Title), needle) {
		return true
	}
	for _, tag := range rec.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
