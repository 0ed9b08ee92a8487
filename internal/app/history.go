package app

import (
	"github.com/llehouerou/stems/internal/state"
)

func (m *Model) loadHistory() {
	if m.state == nil {
		return
	}
	if recent, err := m.state.Recent(state.MaxRecent); err == nil {
		m.history = recent
	}
}

// remember puts source at the top of the history once its stems are installed.
func (m *Model) remember(source string) {
	if source == "" {
		return
	}
	next := make([]string, 0, len(m.history)+1)
	next = append(next, source)
	for _, s := range m.history {
		if s != source {
			next = append(next, s)
		}
	}
	m.history = next[:min(len(next), state.MaxRecent)]

	if m.state == nil {
		return
	}
	if err := m.state.AddRecent(source); err != nil {
		m.status = "Could not save history: " + err.Error()
		m.statusErr = true
	}
}

// recallOlder replaces the input with the previous history entry, keeping
// what was typed so recallNewer can return to it.
func (m *Model) recallOlder() {
	if m.historyIdx+1 >= len(m.history) {
		return
	}
	if m.historyIdx == -1 {
		m.draft = m.input.Value()
	}
	m.historyIdx++
	m.input.SetValue(m.history[m.historyIdx])
	m.input.CursorEnd()
}

func (m *Model) recallNewer() {
	if m.historyIdx < 0 {
		return
	}
	m.historyIdx--
	if m.historyIdx == -1 {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.historyIdx])
	}
	m.input.CursorEnd()
}
