package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/roomcraft/internal/tui/themes"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	p := m.current
	title := m.theme.Title.Render(fmt.Sprintf("%s  Browsing %s", themes.GetCategoryIcon(p.Category), m.category))

	var card strings.Builder
	card.WriteString(m.theme.Bold.Render(p.Name))
	card.WriteString("  ")
	card.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render(p.ID))
	card.WriteString("\n\n")
	fmt.Fprintf(&card, "%s\n", m.theme.Price.Render(fmt.Sprintf("%s %.2f", p.Currency, p.Price)))
	fmt.Fprintf(&card, "%s\n", m.theme.Normal.Render(
		fmt.Sprintf("%.2f × %.2f × %.2f m", p.Dimensions.Width, p.Dimensions.Depth, p.Dimensions.Height)))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&card, "%s\n", m.theme.Subtitle.Render(strings.Join(p.Tags, " · ")))
	}
	if p.Description != "" {
		width := m.width - 8
		if width < 20 {
			width = 20
		}
		fmt.Fprintf(&card, "\n%s\n", m.theme.Normal.Width(width).Render(p.Description))
	}

	parts := []string{title, m.theme.RoundedBox.Render(strings.TrimRight(card.String(), "\n"))}

	footer := fmt.Sprintf("%d viewed", len(m.history)+1)
	if n := len(m.excluded); n > 0 {
		footer += fmt.Sprintf(" · %d excluded", n)
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(footer))

	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, "", m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusInfo:
		return m.theme.StatusInfo.Render(m.status)
	case statusWarning:
		return m.theme.StatusWarning.Render(m.status)
	case statusSuccess:
		return m.theme.StatusSuccess.Render(m.status)
	default:
		return ""
	}
}
