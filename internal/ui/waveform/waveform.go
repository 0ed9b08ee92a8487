// Package waveform renders one row per stem: its name, a block-glyph
// waveform split at the play head, its gain meter and its load state.
package waveform

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/stems/internal/icons"
	"github.com/llehouerou/stems/internal/stems"
	"github.com/llehouerou/stems/internal/ui/render"
	"github.com/llehouerou/stems/internal/ui/styles"
)

// Column widths of a row, in cells.
const (
	LabelWidth = 12
	MeterWidth = 10
	stateWidth = 4
	gapWidth   = 1
	// percentage "100%" plus the size column " 12 MB"
	infoWidth = 4 + 1 + 7
)

// Glyphs from silent to full scale.
var levels = []rune(" ▁▂▃▄▅▆▇█")

// Row is the view state of one stem.
type Row struct {
	Name     string
	State    stems.LoadState
	Gain     float64
	Size     int64
	Peaks    []float64
	Progress float64 // play head, 0..1 of the stem
	Selected bool
	Muted    bool
}

// WaveWidth returns the number of waveform cells a row of the given total
// width has room for. Callers request that many peaks.
func WaveWidth(width int) int {
	return max(width-LabelWidth-MeterWidth-infoWidth-stateWidth-gapWidth*4, 0)
}

// Bars maps peaks onto width block glyphs, stretching or shrinking the
// peak list to fit.
func Bars(peaks []float64, width int) []rune {
	if width <= 0 {
		return nil
	}
	out := make([]rune, width)
	if len(peaks) == 0 {
		for i := range out {
			out[i] = levels[0]
		}
		return out
	}
	top := len(levels) - 1
	for i := range out {
		p := peaks[i*len(peaks)/width]
		p = min(max(p, 0), 1)
		idx := int(p*float64(top) + 0.5)
		// Any signal at all gets the lowest visible bar
		if idx == 0 && p > 0 {
			idx = 1
		}
		out[i] = levels[idx]
	}
	return out
}

// Render draws the waveform with cells before the play head in the played
// color.
func Render(peaks []float64, progress float64, width int) string {
	bars := Bars(peaks, width)
	if len(bars) == 0 {
		return ""
	}
	progress = min(max(progress, 0), 1)
	split := int(progress * float64(len(bars)))
	s := styles.T().S()
	return s.Played.Render(string(bars[:split])) + s.Unplayed.Render(string(bars[split:]))
}

// RenderRow renders one stem row exactly width cells wide.
func RenderRow(r Row, width int) string {
	s := styles.T().S()

	label := render.Label(r.Name, LabelWidth)
	if r.Selected {
		label = s.Playing.Render(label)
	} else {
		label = s.Base.Render(label)
	}

	waveWidth := WaveWidth(width)
	var wave string
	switch r.State {
	case stems.Ready:
		wave = Render(r.Peaks, r.Progress, waveWidth)
	case stems.Failed:
		wave = s.Error.Render(render.Label("unavailable", waveWidth))
	case stems.Unloaded, stems.Loading:
		wave = s.Subtle.Render(render.Label("loading…", waveWidth))
	}

	gain := r.Gain
	if r.Muted {
		gain = 0
	}
	meter := styles.GainMeter(gain, MeterWidth)
	pct := s.Muted.Render(render.Percent(gain))
	size := ""
	if r.Size > 0 {
		size = humanize.IBytes(uint64(r.Size))
	}
	info := pct + " " + s.Subtle.Render(padLeft(size, infoWidth-5))

	icon, iconStyle := stateIcon(r.State, r.Muted)
	state := iconStyle.Render(render.Label(icon, stateWidth))

	row := strings.Join([]string{label, wave, meter, info, state}, strings.Repeat(" ", gapWidth))
	if r.Selected {
		row = s.Cursor.Render(row)
	}
	if w := lipgloss.Width(row); w < width {
		row += strings.Repeat(" ", width-w)
	}
	return row
}

func stateIcon(state stems.LoadState, muted bool) (string, lipgloss.Style) {
	s := styles.T().S()
	switch state {
	case stems.Ready:
		if muted {
			return icons.Volume(true), s.Warning
		}
		return icons.Ready(), s.Success
	case stems.Failed:
		return icons.Failed(), s.Error
	case stems.Unloaded, stems.Loading:
	}
	return icons.Loading(), s.Subtle
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return render.Truncate(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}
