package llm

import (
	"strings"
	"testing"
)

func TestRuleAnswerClasses(t *testing.T) {
	contextTexts := []string{
		"Go: Backend services and tooling.",
		"Vector Search Engine: AI-powered semantic search project.",
		"Consulting: Architecture reviews, available for hire.",
	}

	tests := []struct {
		name     string
		question string
		wantSub  string
	}{
		{"project question", "What projects have you built?", "Vector Search Engine"},
		{"skill question", "Which technology do you know?", "Go: Backend services"},
		{"service question", "Can I hire you?", "Consulting"},
		{"unclassified question", "Tell me something", "Go: Backend services"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuleAnswer(tt.question, contextTexts)
			if got == "" {
				t.Fatal("RuleAnswer() returned empty string")
			}
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("RuleAnswer(%q) = %q, want substring %q", tt.question, got, tt.wantSub)
			}
		})
	}
}

func TestRuleAnswerEmptyContext(t *testing.T) {
	tests := []struct {
		name     string
		question string
	}{
		{"normal question", "What can you do?"},
		{"empty question", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuleAnswer(tt.question, nil)
			if got == "" {
				t.Fatal("RuleAnswer() must be total")
			}
			if got != genericAnswer {
				t.Errorf("RuleAnswer() = %q, want generic capability answer", got)
			}
		})
	}
}

func TestRuleAnswerDeterministic(t *testing.T) {
	contextTexts := []string{"A: first line.", "B: second line."}

	first := RuleAnswer("projects?", contextTexts)
	for i := 0; i < 5; i++ {
		if RuleAnswer("projects?", contextTexts) != first {
			t.Fatal("RuleAnswer() is not deterministic")
		}
	}
}

func TestRuleAnswerClassWithoutMatchingLine(t *testing.T) {
	// Question names a class but no context line matches it.
	contextTexts := []string{"Gardening: growing tomatoes."}

	got := RuleAnswer("any projects?", contextTexts)
	if !strings.Contains(got, "Gardening") {
		t.Errorf("RuleAnswer() = %q, want first context line fallback", got)
	}
}
