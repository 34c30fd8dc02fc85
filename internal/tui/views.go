package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the chat screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("🤖 SpendSense Advisor"),
		m.theme.Subtitle.Render("Answers are based on your recorded expenses and budget."),
	)

	inputBox := m.theme.RoundedBox.Width(max(m.width-2, 10)).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		"",
		inputBox,
		m.help.View(m.keymap),
	)
}

func (m Model) bubbleWidth() int {
	return max(min(m.width*3/4, m.width-4), 20)
}

// renderTranscript renders all messages, then the suggested questions or
// the typing indicator.
func (m Model) renderTranscript() string {
	var b strings.Builder
	width := m.bubbleWidth()

	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case RoleUser:
			bubble := m.theme.UserBubble.Width(width).Render(msg.Text)
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble))
		default:
			b.WriteString(m.theme.BotBubble.Width(width).Render(msg.Text))
		}
	}

	if m.showSuggestions() {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Subtitle.Render("Try asking:"))
		for i, s := range m.suggestions {
			b.WriteString("\n")
			if i == m.selected {
				b.WriteString(m.theme.Selected.Render("▸ " + s))
				continue
			}
			b.WriteString(m.theme.Suggestion.Render("• " + s))
		}
	}

	if m.waiting {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Subtitle.Render("Thinking..."))
	}
	return b.String()
}
