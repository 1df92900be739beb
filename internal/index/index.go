// Package index provides a flat inner-product embedding index over portfolio
// records.
//
// The record set is small (tens to low hundreds of rows), so an exact scan
// beats any approximate structure on both correctness and simplicity.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/adarsh8081/adarsh-portfolio/internal/embedding"
	"github.com/adarsh8081/adarsh-portfolio/internal/record"
)

// ErrNotBuilt is returned by Search before the first successful Rebuild.
var ErrNotBuilt = errors.New("embedding index not built")

// Hit is one search result: the record's position within the generation and
// its inner-product score against the query.
type Hit struct {
	Position int
	Score    float64
	Record   record.Record
}

// generation is an immutable snapshot pairing records with their vectors.
// Readers always see a whole generation or none.
type generation struct {
	records []record.Record
	vectors [][]float32
}

// Index embeds records and answers nearest-neighbor queries. Rebuild installs
// a new generation with a single pointer swap, so searches running
// concurrently with a rebuild stay internally consistent.
type Index struct {
	embedder embedding.Embedder
	gen      atomic.Pointer[generation]
}

// New creates an empty index over the given embedder.
func New(embedder embedding.Embedder) *Index {
	idx := &Index{embedder: embedder}
	idx.gen.Store(&generation{})
	return idx
}

// embedInput composes the text that represents a record in vector space:
// body, space-joined tags, then title.
func embedInput(rec record.Record) string {
	parts := []string{rec.Body, strings.Join(rec.Tags, " "), rec.Title}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Rebuild recomputes embeddings for the full record set and swaps it in
// atomically. On failure the previous generation stays installed.
func (idx *Index) Rebuild(ctx context.Context, records []record.Record) error {
	if idx.embedder == nil {
		return fmt.Errorf("no embedder configured")
	}

	inputs := make([]string, len(records))
	for i, rec := range records {
		inputs[i] = embedInput(rec)
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("embed records: %w", err)
	}

	recs := make([]record.Record, len(records))
	copy(recs, records)

	idx.gen.Store(&generation{records: recs, vectors: vectors})
	return nil
}

// Ready reports whether at least one generation with vectors is installed.
func (idx *Index) Ready() bool {
	gen := idx.gen.Load()
	return gen != nil && len(gen.vectors) > 0
}

// Len returns the number of records in the current generation.
func (idx *Index) Len() int {
	return len(idx.gen.Load().records)
}

// Records returns the current generation's record snapshot.
func (idx *Index) Records() []record.Record {
	return idx.gen.Load().records
}

// Search embeds the raw query text and returns the top k records by
// descending inner-product score. If the index holds fewer than k records,
// all of them are returned.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	gen := idx.gen.Load()
	if gen == nil || len(gen.vectors) == 0 {
		return nil, ErrNotBuilt
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]Hit, 0, len(gen.vectors))
	for pos, vec := range gen.vectors {
		// Positions outside the generation must never surface.
		if pos < 0 || pos >= len(gen.records) {
			continue
		}
		hits = append(hits, Hit{
			Position: pos,
			Score:    InnerProduct(queryVec, vec),
			Record:   gen.records[pos],
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// InnerProduct computes the dot product of two vectors. Mismatched lengths
// score zero over the missing tail.
func InnerProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
