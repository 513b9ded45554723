package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int) string {
	rows := [][2]string{
		{"Enter", "Send message"},
		{"Alt+Enter", "Insert newline"},
		{"Esc", "Stop streaming"},
		{"Alt+N", "New conversation"},
		{"Alt+P", "Select persona"},
		{"Alt+T", "Toggle tools"},
		{"Alt+Y", "Copy last response"},
		{"Alt+J/K", "Scroll half page"},
		{"Alt+H", "Toggle this help"},
		{"Alt+Q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(SelectedStyle.Render(padRight(row[0], 12)))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
