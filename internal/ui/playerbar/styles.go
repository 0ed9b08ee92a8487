package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/stems/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func statusStyle(playing bool) lipgloss.Style {
	if playing {
		return styles.T().S().Playing
	}
	return styles.T().S().Base
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style {
	return styles.T().S().Subtle
}

func progressTimeStyle() lipgloss.Style {
	return styles.T().S().Muted
}
