package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifely/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render(m.session.Title())

	status := faintStyle.Render("enter to send, esc to quit")
	if m.pending {
		status = m.spinner.View() + " Waiting for reply..."
	}
	if m.errText != "" {
		status = errorStyle.Render("✗ " + m.errText)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		m.input.View(),
		status,
	))
}

func (m Model) renderTranscript() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, entry := range m.transcript {
		switch {
		case entry.warning:
			b.WriteString(warningStyle.Render("⚠ " + entry.content))
		case entry.role == models.RoleUser:
			b.WriteString(userLabelStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(entry.content))
		default:
			b.WriteString(assistantLabelStyle.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(entry.content))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
