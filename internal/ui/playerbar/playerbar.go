// Package playerbar renders the transport line shown under the stem list.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/stems/internal/icons"
	"github.com/llehouerou/stems/internal/ui/render"
	"github.com/llehouerou/stems/internal/stems"
)

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Transport stems.PlaybackState
	Title     string
	Artist    string
	Stems     int
	Ready     int
	Failed    int
	Loading   bool
	Spinner   string
	Position  time.Duration
	Duration  time.Duration
}

// NewState builds a State from a session snapshot. The title comes from the
// first stem tag that carries one, falling back to the source.
func NewState(snap stems.Snapshot) State {
	s := State{
		Transport: snap.State,
		Title:     snap.Source,
		Stems:     len(snap.Tracks),
		Loading:   snap.Loading,
		Position:  snap.Position,
		Duration:  snap.Duration,
	}
	tagged := false
	for _, t := range snap.Tracks {
		switch t.State {
		case stems.Ready:
			s.Ready++
		case stems.Failed:
			s.Failed++
		case stems.Unloaded, stems.Loading:
		}
		if !tagged && t.Meta.Title != "" {
			s.Title = t.Meta.Title
			s.Artist = t.Meta.Artist
			tagged = true
		}
	}
	return s
}

// Render returns the player bar string for the given width.
// Returns empty string when nothing was ever requested.
func Render(s State, width int) string {
	if s.Title == "" && !s.Loading && s.Stems == 0 {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := statusIcon(s.Transport)
	if s.Loading && s.Spinner != "" {
		status = s.Spinner
	}
	status = statusStyle(s.Transport == stems.Playing).Render(status)

	title := s.Title
	if s.Artist != "" {
		title = s.Artist + " - " + title
	}
	counts := countsLabel(s)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	statusWidth := lipgloss.Width(status)
	countsWidth := lipgloss.Width(counts)

	// Keep at least 20 cells for the progress bar and its times
	minBar := 20
	maxTitle := max(innerWidth-statusWidth-countsWidth-minBar-sepWidth*3, 5)
	title = render.Truncate(title, maxTitle)
	titleWidth := lipgloss.Width(title)

	barWidth := max(innerWidth-statusWidth-titleWidth-countsWidth-sepWidth*3, 0)

	var content strings.Builder
	content.WriteString(status)
	content.WriteString(separator)
	content.WriteString(titleStyle().Render(title))
	if counts != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(counts))
	}
	if barWidth > 0 {
		content.WriteString(separator)
		content.WriteString(RenderProgressBar(s.Position, s.Duration, barWidth))
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func statusIcon(state stems.PlaybackState) string {
	switch state {
	case stems.Playing:
		return icons.Play()
	case stems.Paused:
		return icons.Pause()
	case stems.Idle, stems.Stopped:
		return icons.Stop()
	}
	return icons.Stop()
}

// countsLabel summarizes stem readiness, e.g. "3/4 stems · 1 failed".
func countsLabel(s State) string {
	if s.Stems == 0 {
		return ""
	}
	if s.Ready == s.Stems {
		return fmt.Sprintf("%d stems", s.Stems)
	}
	label := fmt.Sprintf("%d/%d stems", s.Ready, s.Stems)
	if s.Failed > 0 {
		label += fmt.Sprintf(" · %d failed", s.Failed)
	}
	return label
}
