package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/stems/internal/stems"
)

func TestViewEmptyBeforeSize(t *testing.T) {
	m := New(Options{Session: &fakeSession{}})
	assert.Empty(t, m.View())
}

func TestViewListsStems(t *testing.T) {
	s := readySession("vocals", "drums")
	s.snapshot.Tracks = append(s.snapshot.Tracks, stems.TrackInfo{Name: "bass", State: stems.Failed, Gain: 1})
	m := newTestModel(s, nil)

	view := m.View()

	for _, want := range []string{"stems", "vocals", "drums", "bass", "unavailable", "2/3 stems"} {
		assert.Contains(t, view, want)
	}
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100, "line too wide: %q", line)
	}
}

func TestViewPlaceholderWithoutStems(t *testing.T) {
	m := newTestModel(&fakeSession{}, nil)
	assert.Contains(t, m.View(), "No stems loaded.")

	s := &fakeSession{snapshot: stems.Snapshot{Source: "https://youtu.be/abc", Loading: true}}
	m = newTestModel(s, nil)
	assert.Contains(t, m.View(), "Separating stems")
}

func TestViewHelp(t *testing.T) {
	m := newTestModel(readySession("vocals"), nil)
	m = update(t, m, windowSize(100, 40))
	m = press(t, m, "?")

	view := m.View()
	assert.Contains(t, view, "Play/pause all stems")
	assert.Contains(t, view, "Solo stem")
	assert.Contains(t, view, "vocals", "mixer stays visible around the dialog")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100, "line too wide: %q", line)
	}
}

func TestViewStatusAndWarning(t *testing.T) {
	m := newTestModel(readySession("vocals"), nil)
	m.status = "Playing all tracks..."
	m.warning = "bass unavailable"

	view := m.View()
	assert.Contains(t, view, "Playing all tracks...")
	assert.Contains(t, view, "bass unavailable")
}
