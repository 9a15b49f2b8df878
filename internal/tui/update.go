package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifely/internal/assistant"
	"github.com/julianstephens/lifely/internal/models"
)

const sendTimeout = 2 * time.Minute

// replyMsg carries the outcome of an asynchronous send.
type replyMsg struct {
	result *assistant.SendResult
	err    error
}

func (m Model) sendCmd(text string) tea.Cmd {
	sessionID := m.session.ID
	orchestrator := m.orchestrator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		result, err := orchestrator.SendMessage(ctx, sessionID, text)
		return replyMsg{result: result, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-inputHeight-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - inputHeight - 4
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.pending {
				return m, nil
			}
			text := m.input.Value()
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.errText = ""
			m.pending = true
			m.transcript = append(m.transcript, transcriptEntry{role: models.RoleUser, content: text})
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
		}

	case replyMsg:
		m.pending = false
		if msg.err != nil {
			// The user message is already persisted; surface the failure
			// and let them resend.
			if errors.Is(msg.err, assistant.ErrSessionBusy) {
				m.errText = "A reply is still pending for this chat."
			} else {
				m.errText = msg.err.Error()
			}
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		}
		m.session = msg.result.Session
		m.transcript = append(m.transcript, transcriptEntry{
			role:    models.RoleAssistant,
			content: msg.result.Reply.Content,
		})
		for _, w := range msg.result.Warnings {
			m.transcript = append(m.transcript, transcriptEntry{content: w, warning: true})
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	if m.pending {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
