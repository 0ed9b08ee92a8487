package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/stems/internal/keymap"
)

const (
	seekStep     = 5 * time.Second
	seekStepLong = 30 * time.Second
	gainStep     = 0.05
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())

	if m.showHelp && action != noAction && action != keymap.ActionQuit {
		// Any bound key closes the help overlay
		m.showHelp = false
		if action == keymap.ActionHelp {
			return m, nil
		}
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil
	case keymap.ActionFocusInput:
		m.inputFocused = true
		m.input.Focus()
		m.input.CursorEnd()
		return m, textinput.Blink

	case keymap.ActionPlayPause:
		m.session.RequestTogglePlayback()
	case keymap.ActionStop:
		m.session.RequestStop()
	case keymap.ActionSeekForward:
		_, _ = m.session.Seek(seekStep)
	case keymap.ActionSeekBack:
		_, _ = m.session.Seek(-seekStep)
	case keymap.ActionSeekForwardLong:
		_, _ = m.session.Seek(seekStepLong)
	case keymap.ActionSeekBackLong:
		_, _ = m.session.Seek(-seekStepLong)
	case keymap.ActionJumpStart:
		_, _ = m.session.SeekTo(0)

	case keymap.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keymap.ActionMoveDown:
		if m.cursor < len(m.snapshot.Tracks)-1 {
			m.cursor++
		}
	case keymap.ActionGainUp:
		m.nudgeGain(gainStep)
	case keymap.ActionGainDown:
		m.nudgeGain(-gainStep)
	case keymap.ActionMute:
		m.toggleMute()
	case keymap.ActionSolo:
		m.toggleSolo()
	case keymap.ActionResetGain:
		if t, ok := m.selected(); ok {
			delete(m.muted, t.Name)
			_, _ = m.session.SetTrackGain(t.Name, 1)
		}

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// noAction is what the resolver returns for unbound keys.
const noAction keymap.Action = ""
