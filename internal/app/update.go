package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/stems/internal/stems"
	"github.com/llehouerou/stems/internal/ui/render"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		if m.inputFocused {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case TickMsg:
		m.session.Tick()
		m.refresh()
		return m, TickCmd()

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusMsg:
		return m.handleStatus(msg)

	case StateChangedMsg:
		m.refresh()
		return m, WatchSessionEvents(m.sub)

	case TracksReplacedMsg:
		return m.handleTracksReplaced(msg)

	case TrackLoadedMsg:
		return m.handleTrackLoaded(msg)

	case GainChangedMsg:
		m.refresh()
		return m, WatchSessionEvents(m.sub)

	case WarningMsg:
		m.warning = fmt.Sprintf("%s unavailable, playing the other stems", render.Sanitize(msg.Name))
		return m, WatchSessionEvents(m.sub)

	case SessionClosedMsg:
		return m, nil

	case StderrMsg:
		m.status = render.Sanitize(msg.Line)
		m.statusErr = true
		return m, WatchStderr(m.stderrLines)
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.input.Width = max(m.width-8, 10)
	if cols := m.waveCols(); cols != m.peakCols {
		m.peakCols = cols
		clear(m.peaks)
	}
	m.refresh()
	return m, nil
}

func (m Model) handleStatus(msg StatusMsg) (tea.Model, tea.Cmd) {
	m.status = msg.Message
	m.statusErr = msg.Err != nil
	m.refresh()

	if errors.Is(msg.Err, stems.ErrProviderUnavailable) || errors.Is(msg.Err, stems.ErrNoStemsReturned) {
		m.sendErrorNotification(msg.Message)
	}

	spin := m.ensureSpinner()
	return m, tea.Batch(WatchSessionEvents(m.sub), spin)
}

func (m Model) handleTracksReplaced(msg TracksReplacedMsg) (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.warning = ""
	clear(m.muted)
	clear(m.peaks)
	m.refresh()
	if msg.Generation == m.snapshot.Generation {
		m.remember(msg.Source)
	}
	spin := m.ensureSpinner()
	return m, tea.Batch(WatchSessionEvents(m.sub), spin)
}

func (m Model) handleTrackLoaded(msg TrackLoadedMsg) (tea.Model, tea.Cmd) {
	m.refresh()
	if m.settled() && m.snapshot.Generation == msg.Generation && m.notifiedGeneration != msg.Generation {
		m.notifiedGeneration = msg.Generation
		m.sendLoadedNotification()
	}
	return m, WatchSessionEvents(m.sub)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		source := strings.TrimSpace(m.input.Value())
		if source == "" {
			return m, nil
		}
		m.inputFocused = false
		m.input.Blur()
		m.historyIdx = -1
		m.session.RequestLoad(source)
		return m, nil
	case "up":
		m.recallOlder()
		return m, nil
	case "down":
		m.recallNewer()
		return m, nil
	case "esc":
		if len(m.snapshot.Tracks) == 0 && m.snapshot.Source == "" {
			// Nothing else to focus yet
			return m, nil
		}
		m.inputFocused = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-reads the session state and fetches waveforms of stems that
// became ready.
func (m *Model) refresh() {
	m.snapshot = m.session.Snapshot()
	if n := len(m.snapshot.Tracks); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.peakCols <= 0 {
		return
	}
	for _, t := range m.snapshot.Tracks {
		if t.State != stems.Ready {
			continue
		}
		if _, ok := m.peaks[t.Name]; ok {
			continue
		}
		if p, err := m.session.Peaks(t.Name, m.peakCols); err == nil {
			m.peaks[t.Name] = p
		}
	}
}

// busy reports whether a provider call or a stem load is in flight.
func (m Model) busy() bool {
	if m.snapshot.Loading {
		return true
	}
	for _, t := range m.snapshot.Tracks {
		if !t.State.Settled() {
			return true
		}
	}
	return false
}

// settled reports whether every stem of the current batch is Ready or Failed.
func (m Model) settled() bool {
	if len(m.snapshot.Tracks) == 0 {
		return false
	}
	for _, t := range m.snapshot.Tracks {
		if !t.State.Settled() {
			return false
		}
	}
	return true
}

func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m Model) selected() (stems.TrackInfo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Tracks) {
		return stems.TrackInfo{}, false
	}
	return m.snapshot.Tracks[m.cursor], true
}
