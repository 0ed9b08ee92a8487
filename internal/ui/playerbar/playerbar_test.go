package playerbar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/icons"
	"github.com/llehouerou/stems/internal/stems"
)

func TestNewState_CountsAndTitle(t *testing.T) {
	snap := stems.Snapshot{
		Source:   "https://youtu.be/abc",
		State:    stems.Paused,
		Position: 3 * time.Second,
		Duration: 10 * time.Second,
		Tracks: []stems.TrackInfo{
			{Name: "vocals", State: stems.Ready},
			{Name: "drums", State: stems.Ready, Meta: audio.Meta{Title: "Song", Artist: "Band"}},
			{Name: "bass", State: stems.Failed, Err: errors.New("boom")},
			{Name: "other", State: stems.Loading},
		},
	}

	s := NewState(snap)

	assert.Equal(t, stems.Paused, s.Transport)
	assert.Equal(t, "Song", s.Title)
	assert.Equal(t, "Band", s.Artist)
	assert.Equal(t, 4, s.Stems)
	assert.Equal(t, 2, s.Ready)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3*time.Second, s.Position)
}

func TestNewState_FallsBackToSource(t *testing.T) {
	s := NewState(stems.Snapshot{Source: "https://youtu.be/abc", Loading: true})
	assert.Equal(t, "https://youtu.be/abc", s.Title)
	assert.True(t, s.Loading)
}

func TestRender_EmptyWhenNothingRequested(t *testing.T) {
	assert.Empty(t, Render(State{}, 80))
}

func TestRender_FitsWidth(t *testing.T) {
	icons.Init("none")
	s := State{
		Transport: stems.Playing,
		Title:     strings.Repeat("very long title ", 10),
		Stems:     4,
		Ready:     4,
		Position:  time.Minute,
		Duration:  3 * time.Minute,
	}

	out := Render(s, 80)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
	assert.Contains(t, out, "4 stems")
	assert.Contains(t, out, "1:00")
	assert.Contains(t, out, "3:00")
	assert.Equal(t, Height, lipgloss.Height(out))
}

func TestRender_SpinnerWhileLoading(t *testing.T) {
	s := State{Title: "https://youtu.be/abc", Loading: true, Spinner: "@@"}
	assert.Contains(t, Render(s, 80), "@@")
}

func TestCountsLabel(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want string
	}{
		{"none", State{}, ""},
		{"all ready", State{Stems: 4, Ready: 4}, "4 stems"},
		{"pending", State{Stems: 4, Ready: 1}, "1/4 stems"},
		{"failed", State{Stems: 4, Ready: 3, Failed: 1}, "3/4 stems · 1 failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countsLabel(tt.s))
		})
	}
}

func TestFilledCells(t *testing.T) {
	tests := []struct {
		pos, dur time.Duration
		width    int
		want     int
	}{
		{0, time.Minute, 10, 0},
		{30 * time.Second, time.Minute, 10, 5},
		{2 * time.Minute, time.Minute, 10, 10},
		{time.Second, 0, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filledCells(tt.pos, tt.dur, tt.width))
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	out := RenderProgressBar(time.Second, time.Minute, 8)
	assert.Equal(t, "0:01 / 1:00", out)
}
