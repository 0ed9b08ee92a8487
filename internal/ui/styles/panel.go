package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered panel style for the source input and the
// stem list, highlighted when the panel has keyboard focus.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
