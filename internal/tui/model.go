// Package tui is the interactive chat view. It wraps one chat session in
// a scrolling transcript with an input line; sends run asynchronously so
// the view stays responsive while a reply is pending.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifely/internal/assistant"
	"github.com/julianstephens/lifely/internal/models"
)

type Model struct {
	orchestrator *assistant.Orchestrator
	session      models.ChatSession

	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	transcript []transcriptEntry

	pending  bool
	quitting bool
	ready    bool
	errText  string
	width    int
	height   int
}

// transcriptEntry is one rendered line group: a message or a warning
// attached to the reply that produced it.
type transcriptEntry struct {
	role    models.MessageRole
	content string
	warning bool
}

func NewModel(orchestrator *assistant.Orchestrator, session models.ChatSession) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Focus()
	input.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		orchestrator: orchestrator,
		session:      session,
		input:        input,
		spinner:      sp,
	}
	for _, msg := range session.Messages {
		m.transcript = append(m.transcript, transcriptEntry{role: msg.Role, content: msg.Content})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the chat view and blocks until the user quits.
func Run(orchestrator *assistant.Orchestrator, session models.ChatSession) error {
	p := tea.NewProgram(NewModel(orchestrator, session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
