package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/stems/internal/state"
)

func TestInputPrefilledWithLastSource(t *testing.T) {
	st := state.NewMock("https://youtu.be/previous", "https://youtu.be/older")

	m := New(Options{Session: &fakeSession{}, State: st})
	assert.True(t, m.inputFocused)
	assert.Equal(t, "https://youtu.be/previous", m.input.Value())

	m = New(Options{Session: &fakeSession{}, State: st, Source: "https://youtu.be/new"})
	assert.Equal(t, "https://youtu.be/new", m.input.Value())
}

func TestHistoryRecall(t *testing.T) {
	st := state.NewMock("b", "a")
	m := New(Options{Session: &fakeSession{}, State: st})
	m.input.SetValue("dra")

	m = press(t, m, "up")
	assert.Equal(t, "b", m.input.Value())
	m = press(t, m, "up")
	assert.Equal(t, "a", m.input.Value())
	m = press(t, m, "up")
	assert.Equal(t, "a", m.input.Value(), "stops at the oldest entry")

	m = press(t, m, "down", "down")
	assert.Equal(t, "dra", m.input.Value(), "typed value comes back")
	m = press(t, m, "down")
	assert.Equal(t, "dra", m.input.Value())
}

func TestTracksReplacedRemembersSource(t *testing.T) {
	s := readySession("vocals")
	st := state.NewMock("old")
	m := New(Options{Session: s, State: st})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = update(t, m, TracksReplacedMsg{Generation: 1, Source: s.snapshot.Source, Names: []string{"vocals"}})

	recent, _ := st.Recent(10)
	assert.Equal(t, []string{s.snapshot.Source, "old"}, recent)
	assert.Equal(t, []string{s.snapshot.Source, "old"}, m.history)
}

func TestStaleTracksReplacedNotRemembered(t *testing.T) {
	s := readySession("vocals")
	st := state.NewMock()
	m := New(Options{Session: s, State: st})

	update(t, m, TracksReplacedMsg{Generation: 9, Source: "stale", Names: []string{"vocals"}})

	recent, _ := st.Recent(10)
	assert.Empty(t, recent)
}

func TestHistoryWithoutStore(t *testing.T) {
	s := readySession("vocals")
	m := newTestModel(s, nil)

	m = update(t, m, TracksReplacedMsg{Generation: 1, Source: s.snapshot.Source, Names: []string{"vocals"}})
	assert.Equal(t, []string{s.snapshot.Source}, m.history)
}
