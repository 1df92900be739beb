package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/adarsh8081/adarsh-portfolio/internal/config"
)

// fakeModel returns a fixed response or error.
type fakeModel struct {
	response string
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerateUsesActiveBackend(t *testing.T) {
	g := newWithModel(&fakeModel{response: "SENTINEL ANSWER"}, BackendGemini, time.Second)

	got := g.Generate(context.Background(), "prompt", "question", nil)
	if got != "SENTINEL ANSWER" {
		t.Errorf("Generate() = %q, want backend sentinel", got)
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	g := newWithModel(&fakeModel{err: errors.New("quota exceeded")}, BackendOpenAI, time.Second)

	got := g.Generate(context.Background(), "prompt", "projects?", []string{"Proj: a project."})
	if got == "" {
		t.Fatal("Generate() must never return empty text")
	}
	if got == "SENTINEL ANSWER" {
		t.Error("failed backend output should not be returned")
	}
}

func TestGenerateFallsBackOnEmptyResponse(t *testing.T) {
	g := newWithModel(&fakeModel{response: "   "}, BackendOllama, time.Second)

	got := g.Generate(context.Background(), "prompt", "skills?", []string{"Go: backend skill."})
	if got == "" {
		t.Fatal("Generate() must never return empty text")
	}
}

func TestGenerateTotal(t *testing.T) {
	// Empty everything still yields a non-empty answer.
	g := Resolve(context.Background(), config.Config{GenerateTimeout: time.Second}, nil)

	got := g.Generate(context.Background(), "", "", nil)
	if got == "" {
		t.Fatal("Generate() must be total")
	}
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want Backend
	}{
		{
			"no backends configured",
			config.Config{},
			BackendRuleBased,
		},
		{
			"local model only",
			config.Config{OllamaModel: "llama3", OllamaHost: "http://localhost:11434"},
			BackendOllama,
		},
		{
			"openai outranks local",
			config.Config{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini", OllamaModel: "llama3"},
			BackendOpenAI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Resolve(context.Background(), tt.cfg, nil)
			if g.Backend() != tt.want {
				t.Errorf("Resolve() backend = %s, want %s", g.Backend(), tt.want)
			}
		})
	}
}
