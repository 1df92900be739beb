// Package tui provides the interactive chat terminal UI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adarsh8081/adarsh-portfolio/internal/prompt"
	"github.com/adarsh8081/adarsh-portfolio/internal/service"
)

// ChatPort is the TUI-facing subset of the portfolio service.
type ChatPort interface {
	Chat(ctx context.Context, question string, history []prompt.Turn, useVoice bool) (service.ChatResult, error)
}

// answerMsg carries one completed chat exchange back into the update loop.
type answerMsg struct {
	question string
	result   service.ChatResult
	err      error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	svc      ChatPort
	input    textinput.Model
	viewport viewport.Model
	history  []prompt.Turn
	lines    []string
	status   string
	waiting  bool
	ready    bool
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// New creates a chat model over the service.
func New(svc ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the portfolio and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{svc: svc, input: ti, viewport: vp, status: "Ready. Ctrl+C to quit."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		vh := msg.Height - ih - ch - 3
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.transcript())
		return m, nil

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.history = append(m.history, prompt.Turn{User: msg.question, Assistant: msg.result.Answer})
		m.lines = append(m.lines, botStyle.Render("Assistant: ")+msg.result.Answer)
		if len(msg.result.Sources) > 0 {
			titles := make([]string, len(msg.result.Sources))
			for i, src := range msg.result.Sources {
				titles[i] = src.Title
			}
			m.lines = append(m.lines, sourceStyle.Render("Sources: "+strings.Join(titles, ", ")))
		}
		m.lines = append(m.lines, "")
		m.status = "Ready. Ctrl+C to quit."
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			m.status = "Thinking..."
			m.lines = append(m.lines, userStyle.Render("You: ")+q)
			m.viewport.SetContent(m.transcript())
			m.viewport.GotoBottom()
			return m, m.askCmd(q)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// askCmd runs the chat call off the update loop.
func (m Model) askCmd(question string) tea.Cmd {
	history := make([]prompt.Turn, len(m.history))
	copy(history, m.history)
	return func() tea.Msg {
		result, err := m.svc.Chat(context.Background(), question, history, false)
		return answerMsg{question: question, result: result, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Portfolio Chat")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) transcript() string {
	if len(m.lines) == 0 {
		return "No messages yet. Ask something about the portfolio."
	}
	return strings.Join(m.lines, "\n")
}

// Run starts the chat UI and blocks until the user quits.
func Run(svc ChatPort) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat ui: %w", err)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
