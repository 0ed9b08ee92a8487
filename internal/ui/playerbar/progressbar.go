package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/stems/internal/ui/render"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders the transport position as a line bar.
// Format: 1:23  ━━━━━─────  4:56
func RenderProgressBar(position, duration time.Duration, width int) string {
	posStr := render.Duration(position)
	durStr := render.Duration(duration)

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return progressTimeStyle().Render(posStr + " / " + durStr)
	}

	filled := filledCells(position, duration, barWidth)
	bar := progressBarFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return progressTimeStyle().Render(posStr) + "  " + bar + "  " + progressTimeStyle().Render(durStr)
}

// filledCells returns how many of width cells lie before the play head.
func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}
