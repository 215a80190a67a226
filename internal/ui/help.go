package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Views", "Navigation", "Rentals", "General"}

// renderHelp renders the help overlay from the default keymap.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	groups := DefaultKeyMap().FullHelp()

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, group := range groups {
		sectionTitle := ""
		if i < len(helpSectionTitles) {
			sectionTitle = helpSectionTitles[i]
		}
		b.WriteString(styles.AccentText.Bold(true).Render(sectionTitle))
		b.WriteString("\n")

		for _, binding := range group {
			b.WriteString(renderHelpItem(m.theme, styles, binding))
		}

		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func renderHelpItem(theme Theme, styles Styles, binding key.Binding) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning)).
		Width(12)
	help := binding.Help()
	return keyStyle.Render(help.Key) + styles.Text.Render(help.Desc) + "\n"
}
