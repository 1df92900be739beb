package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adarsh8081/adarsh-portfolio/internal/prompt"
	"github.com/adarsh8081/adarsh-portfolio/internal/service"
)

// scriptedPort answers every question with a fixed reply and records the
// history it was handed.
type scriptedPort struct {
	answer      string
	lastHistory []prompt.Turn
}

func (p *scriptedPort) Chat(ctx context.Context, question string, history []prompt.Turn, useVoice bool) (service.ChatResult, error) {
	p.lastHistory = history
	return service.ChatResult{
		Answer:  p.answer,
		Sources: []service.Source{{ID: "project_1", Title: "Vector Search Engine", Category: "project"}},
	}, nil
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeAndSubmit(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestSubmitProducesAskCmd(t *testing.T) {
	m := sized(New(&scriptedPort{answer: "hello"}))

	m, cmd := typeAndSubmit(m, "What projects?")
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if !m.waiting {
		t.Error("model should be waiting after submit")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}
}

func TestAnswerAppendsToTranscript(t *testing.T) {
	m := sized(New(&scriptedPort{answer: "Here is a project."}))

	m, cmd := typeAndSubmit(m, "What projects?")
	msg := cmd()

	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.waiting {
		t.Error("model should not be waiting after the answer lands")
	}
	transcript := m.transcript()
	if !strings.Contains(transcript, "What projects?") {
		t.Errorf("transcript missing question: %q", transcript)
	}
	if !strings.Contains(transcript, "Here is a project.") {
		t.Errorf("transcript missing answer: %q", transcript)
	}
	if !strings.Contains(transcript, "Vector Search Engine") {
		t.Errorf("transcript missing sources: %q", transcript)
	}
}

func TestHistoryCarriedAcrossTurns(t *testing.T) {
	port := &scriptedPort{answer: "answer"}
	m := sized(New(port))

	for i := 0; i < 2; i++ {
		var cmd tea.Cmd
		m, cmd = typeAndSubmit(m, fmt.Sprintf("question %d", i))
		updated, _ := m.Update(cmd())
		m = updated.(Model)
	}

	if len(port.lastHistory) != 1 {
		t.Fatalf("second turn should carry one prior exchange, got %d", len(port.lastHistory))
	}
	if port.lastHistory[0].User != "question 0" {
		t.Errorf("unexpected history turn: %+v", port.lastHistory[0])
	}
}

func TestEmptySubmitIgnored(t *testing.T) {
	m := sized(New(&scriptedPort{answer: "x"}))

	m, cmd := typeAndSubmit(m, "   ")
	if cmd != nil {
		t.Error("blank input should not produce a command")
	}
	if m.waiting {
		t.Error("model should not be waiting after blank input")
	}
}
