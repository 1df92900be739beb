// Package prompt assembles grounded generation prompts from retrieval hits
// and conversation history.
package prompt

import (
	"fmt"
	"strings"

	"github.com/adarsh8081/adarsh-portfolio/internal/retrieval"
)

// HistoryWindow is the number of most recent conversation turns included in
// a prompt.
const HistoryWindow = 3

// systemInstruction scopes the assistant to portfolio topics.
const systemInstruction = `You are the AI assistant for a personal portfolio website. Answer questions about the owner's projects, blog posts, skills, services, testimonials and achievements using ONLY the portfolio context below. Be concise and friendly. If a question is unrelated to the portfolio, politely redirect the visitor to portfolio topics.`

// Turn is one user/assistant exchange, most recent last in a history slice.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ContextLines renders retrieval hits as one "title: body" line per hit,
// preserving retrieval order.
func ContextLines(hits []retrieval.Hit) []string {
	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		lines = append(lines, fmt.Sprintf("%s: %s", hit.Record.Title, hit.Record.Body))
	}
	return lines
}

// Assemble builds the generation prompt: system instruction, context block,
// the last HistoryWindow turns (oldest of the window first), and the
// question. Pure and deterministic.
func Assemble(hits []retrieval.Hit, history []Turn, question string) string {
	var sb strings.Builder

	sb.WriteString(systemInstruction)
	sb.WriteString("\n\n")

	lines := ContextLines(hits)
	if len(lines) > 0 {
		sb.WriteString("Portfolio context:\n")
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	if len(history) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, turn := range history {
			sb.WriteString("User: ")
			sb.WriteString(turn.User)
			sb.WriteString("\nAssistant: ")
			sb.WriteString(turn.Assistant)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)

	return sb.String()
}
