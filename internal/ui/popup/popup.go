// Package popup renders centered dialogs and draws them over a base view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/stems/internal/ui/styles"
)

// Dialog is a bordered box with a title, a body and a footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// Render returns the dialog centered in a termWidth x termHeight area.
// Body lines wider than the terminal are truncated.
func (d Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()

	inner := maxLineWidth(d.Content)
	inner = max(inner, lipgloss.Width(d.Title), lipgloss.Width(d.Footer))
	inner = min(inner+2, max(termWidth-4, 1))

	lines := make([]string, 0, strings.Count(d.Content, "\n")+5)
	if d.Title != "" {
		lines = append(lines, centerLine(t.S().Title.Render(d.Title), inner), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		if lipgloss.Width(line) > inner {
			line = ansi.Truncate(line, inner, "…")
		}
		lines = append(lines, padLine(line, inner))
	}
	if d.Footer != "" {
		lines = append(lines, "", centerLine(t.S().Subtle.Render(d.Footer), inner))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	return center(box, termWidth, termHeight)
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func padLine(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

func center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(box)

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
	}
	return b.String()
}

// Compose draws view over base. Blank overlay lines leave the base line
// untouched; otherwise the visible span of the overlay line replaces the
// same columns of the base line. Both may carry ANSI styling.
func Compose(base, view string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(view, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
		content := ansi.Cut(line, startCol, endCol)

		bl := baseLines[i]
		if w := ansi.StringWidth(bl); w < width {
			bl += strings.Repeat(" ", width-w)
		}

		// A wide rune cut in half at either edge is replaced by spaces
		prefix := ansi.Cut(bl, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}
		out := prefix + content
		if endCol < width {
			suffix := ansi.Cut(bl, endCol, width)
			want := width - endCol
			if w := ansi.StringWidth(suffix); w > want {
				suffix = " " + ansi.Cut(suffix, w-want+1, w)
			} else if w < want {
				suffix = strings.Repeat(" ", want-w) + suffix
			}
			out += suffix
		}
		baseLines[i] = out
	}

	return strings.Join(baseLines, "\n")
}
