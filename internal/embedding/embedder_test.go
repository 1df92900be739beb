package embedding

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// fakeBatcher implements the langchaingo embedder surface with canned vectors.
type fakeBatcher struct {
	dim int
	err error
}

func (f *fakeBatcher) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.dim)
	}
	return out, nil
}

func (f *fakeBatcher) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return make([]float32, f.dim), nil
}

func TestEmbedValidatesDimension(t *testing.T) {
	e := &langchainEmbedder{model: &fakeBatcher{dim: 3}, modelName: "test", dimension: 384}

	if _, err := e.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected dimension mismatch error")
	}

	e.dimension = 3
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("got %d dims, want 3", len(vec))
	}
}

func TestEmbedBatchValidatesEveryVector(t *testing.T) {
	e := &langchainEmbedder{model: &fakeBatcher{dim: 4}, modelName: "test", dimension: 4}

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 3 {
		t.Errorf("got %d vectors, want 3", len(vecs))
	}

	e.dimension = 8
	if _, err := e.EmbedBatch(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	e := &langchainEmbedder{model: &fakeBatcher{dim: 2}, modelName: "test", dimension: 2}

	vecs, err := e.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs) != 0 {
		t.Errorf("got %d vectors, want 0", len(vecs))
	}
}

func TestProbe(t *testing.T) {
	ok := &langchainEmbedder{model: &fakeBatcher{dim: 2}, modelName: "test", dimension: 2}
	if !Probe(context.Background(), ok, time.Second) {
		t.Error("probe should succeed against a working backend")
	}

	broken := &langchainEmbedder{model: &fakeBatcher{dim: 2, err: fmt.Errorf("connection refused")}, modelName: "test", dimension: 2}
	if Probe(context.Background(), broken, time.Second) {
		t.Error("probe should fail against a broken backend")
	}

	if Probe(context.Background(), nil, time.Second) {
		t.Error("probe of nil embedder should fail")
	}
}
