package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	author  lipgloss.Style
	text    lipgloss.Style
	media   lipgloss.Style
	quote   lipgloss.Style
	mention lipgloss.Style
	html    lipgloss.Style
	meta    lipgloss.Style
}

func newStyles() styles {
	return styles{
		author:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		text:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		media:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		quote:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		mention: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		html:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:    lipgloss.NewStyle().Faint(true),
	}
}
