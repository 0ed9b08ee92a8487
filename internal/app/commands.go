package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/stems/internal/stems"
)

// tickInterval is short enough for the play head to move smoothly across
// the waveforms.
const tickInterval = 200 * time.Millisecond

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchSessionEvents returns a command that waits for the next session event.
// It listens on all subscription channels and converts events to tea.Msg.
func WatchSessionEvents(sub *stems.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.Status:
			return StatusMsg(e)
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.TracksReplaced:
			return TracksReplacedMsg(e)
		case e := <-sub.TrackLoaded:
			return TrackLoadedMsg(e)
		case e := <-sub.GainChanged:
			return GainChangedMsg(e)
		case e := <-sub.Warnings:
			return WarningMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchStderr returns a command that waits for a captured stderr line.
func WatchStderr(lines <-chan string) tea.Cmd {
	return waitForChannel(lines, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}
