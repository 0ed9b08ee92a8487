package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/stems/internal/keymap"
	"github.com/llehouerou/stems/internal/ui/playerbar"
	"github.com/llehouerou/stems/internal/ui/popup"
	"github.com/llehouerou/stems/internal/ui/render"
	"github.com/llehouerou/stems/internal/ui/styles"
	"github.com/llehouerou/stems/internal/ui/waveform"
)

// panelChrome is the horizontal space taken by a panel border and padding.
const panelChrome = 4

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderInput(),
		m.renderStems(),
	}
	if bar := playerbar.Render(m.playerState(), m.width); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, m.renderStatus())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if !m.showHelp {
		return view
	}

	// The dialog can be taller than the mixer
	if n := strings.Count(view, "\n") + 1; n < m.height {
		view += strings.Repeat("\n", m.height-n)
	}
	return popup.Compose(view, m.helpDialog().Render(m.width, m.height), m.width)
}

func (m Model) renderHeader() string {
	t := styles.T()
	title := styles.ApplyBoldGradient("stems", t.Primary, t.Secondary)
	hint := t.S().Subtle.Render(m.keys.Hint(keymap.ActionHelp))
	return " " + render.Row(title, hint, m.width-2)
}

func (m Model) renderInput() string {
	return styles.PanelStyle(m.inputFocused).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.input.View())
}

func (m Model) rowWidth() int {
	return max(m.width-panelChrome, 0)
}

func (m Model) waveCols() int {
	return waveform.WaveWidth(m.rowWidth())
}

func (m Model) renderStems() string {
	s := styles.T().S()
	var lines []string

	if len(m.snapshot.Tracks) == 0 {
		msg := "No stems loaded."
		if m.snapshot.Loading {
			msg = m.spinner.View() + " Separating stems, this takes a while..."
		}
		lines = append(lines, s.Muted.Render(msg))
	}

	for i, t := range m.snapshot.Tracks {
		var progress float64
		if t.Duration > 0 {
			progress = float64(m.snapshot.Position) / float64(t.Duration)
		}
		row := waveform.Row{
			Name:     t.Name,
			State:    t.State,
			Gain:     t.Gain,
			Size:     t.Size,
			Peaks:    m.peaks[t.Name],
			Progress: progress,
			Selected: i == m.cursor && !m.inputFocused,
			Muted:    m.isMuted(t.Name),
		}
		lines = append(lines, waveform.RenderRow(row, m.rowWidth()))
	}

	return styles.PanelStyle(!m.inputFocused).
		Padding(0, 1).
		Width(m.width - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) helpDialog() popup.Dialog {
	s := styles.T().S()
	var lines []string
	for _, context := range []string{"global", "input", "playback", "mixer"} {
		lines = append(lines, s.Subtle.Render(context))
		for _, b := range keymap.ByContext(context) {
			keys := make([]string, 0, len(b.Keys))
			for _, k := range b.Keys {
				if k == " " {
					continue
				}
				keys = append(keys, k)
			}
			lines = append(lines, "  "+s.Playing.Render(render.Label(strings.Join(keys, " "), 22))+s.Base.Render(b.Description))
		}
	}
	return popup.Dialog{
		Title:   "Keys",
		Content: strings.Join(lines, "\n"),
		Footer:  "any key to close",
	}
}

func (m Model) playerState() playerbar.State {
	ps := playerbar.NewState(m.snapshot)
	if m.busy() {
		ps.Loading = true
		ps.Spinner = m.spinner.View()
	}
	return ps
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	style := s.Muted
	if m.statusErr {
		style = s.Error
	}
	line := " " + style.Render(render.Truncate(m.status, max(m.width-2, 0)))
	if m.warning != "" {
		line += "\n " + s.Warning.Render(render.Truncate(m.warning, max(m.width-2, 0)))
	}
	return line
}
