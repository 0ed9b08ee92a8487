package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/stems/internal/notify"
	"github.com/llehouerou/stems/internal/stems"
)

// fakeSession records shell commands and serves a scripted snapshot.
type fakeSession struct {
	snapshot stems.Snapshot
	loads    []string
	toggles  int
	stops    int
	seeks    []time.Duration
	seekTos  []time.Duration
	ticks    int
	peakReqs map[string]int
}

func (f *fakeSession) Subscribe() *stems.Subscription { return nil }

func (f *fakeSession) RequestLoad(source string) { f.loads = append(f.loads, source) }

func (f *fakeSession) RequestTogglePlayback() { f.toggles++ }

func (f *fakeSession) RequestStop() { f.stops++ }

func (f *fakeSession) Seek(delta time.Duration) (time.Duration, error) {
	f.seeks = append(f.seeks, delta)
	return 0, nil
}

func (f *fakeSession) SeekTo(pos time.Duration) (time.Duration, error) {
	f.seekTos = append(f.seekTos, pos)
	return pos, nil
}

func (f *fakeSession) SetTrackGain(name string, gain float64) (float64, error) {
	gain = min(max(gain, 0), 1)
	for i := range f.snapshot.Tracks {
		if f.snapshot.Tracks[i].Name == name {
			f.snapshot.Tracks[i].Gain = gain
			return gain, nil
		}
	}
	return 0, &stems.UnknownTrackError{Name: name}
}

func (f *fakeSession) Peaks(name string, n int) ([]float64, error) {
	if f.peakReqs == nil {
		f.peakReqs = make(map[string]int)
	}
	f.peakReqs[name]++
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5
	}
	return out, nil
}

func (f *fakeSession) Snapshot() stems.Snapshot {
	snap := f.snapshot
	snap.Tracks = append([]stems.TrackInfo(nil), f.snapshot.Tracks...)
	return snap
}

func (f *fakeSession) Tick() { f.ticks++ }

func (f *fakeSession) gain(name string) float64 {
	for _, t := range f.snapshot.Tracks {
		if t.Name == name {
			return t.Gain
		}
	}
	return -1
}

// readySession returns a session holding ready stems at unity gain.
func readySession(names ...string) *fakeSession {
	f := &fakeSession{snapshot: stems.Snapshot{
		Source:     "https://youtu.be/abc",
		Generation: 1,
		State:      stems.Stopped,
		Duration:   time.Minute,
	}}
	for _, n := range names {
		f.snapshot.Tracks = append(f.snapshot.Tracks, stems.TrackInfo{
			Name: n, State: stems.Ready, Gain: 1, Duration: time.Minute,
		})
	}
	return f
}

// mockNotifier records notifications for testing.
type mockNotifier struct {
	notifications []notify.Notification
	lastID        uint32
}

func (m *mockNotifier) Notify(n notify.Notification) (uint32, error) {
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error {
	return nil
}

// newTestModel builds a sized model with the stem list focused.
func newTestModel(s Session, n notify.Notifier) Model {
	m := New(Options{Session: s, Notifier: n, Notifications: true})
	m.inputFocused = false
	m.input.Blur()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case "shift+left":
		return tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t testing.TB, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func windowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
