package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var (
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	paragraphStyle = lipgloss.NewStyle().Width(78).Padding(0, 0, 1, 2)
)

// keyword renders a highlighted term for help text.
func keyword(s string) string {
	return keywordStyle.Render(s)
}

// paragraph formats help text at a fixed width with hanging indentation.
func paragraph(s string) string {
	s = strings.TrimSpace(s)
	s = wordwrap.String(s, 76)
	s = indent.String(s, 2)
	return paragraphStyle.Render(s)
}
