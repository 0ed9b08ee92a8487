package app

import (
	"fmt"
	"strings"

	"github.com/llehouerou/stems/internal/notify"
	"github.com/llehouerou/stems/internal/stems"
)

const notificationTimeout = 5000 // ms

// sendLoadedNotification announces that the current batch finished loading.
// Each notification replaces the previous one.
func (m *Model) sendLoadedNotification() {
	if m.notifier == nil || !m.notificationsEnabled {
		return
	}

	var ready, failed []string
	for _, t := range m.snapshot.Tracks {
		switch t.State {
		case stems.Ready:
			ready = append(ready, t.Name)
		case stems.Failed:
			failed = append(failed, t.Name)
		case stems.Unloaded, stems.Loading:
		}
	}

	n := notify.Notification{
		Title:      "Stems ready",
		Body:       strings.Join(ready, " · "),
		Icon:       notify.IconAudio,
		Timeout:    notificationTimeout,
		ReplacesID: m.lastNotificationID,
		Urgency:    notify.UrgencyLow,
	}
	switch {
	case len(ready) == 0:
		n.Title = "No stem could be loaded"
		n.Body = m.snapshot.Source
		n.Icon = notify.IconError
		n.Urgency = notify.UrgencyNormal
	case len(failed) > 0:
		n.Body += fmt.Sprintf("\n%s unavailable", strings.Join(failed, ", "))
		n.Urgency = notify.UrgencyNormal
	}

	m.send(n)
}

// sendErrorNotification reports a failed provider call.
func (m *Model) sendErrorNotification(message string) {
	if m.notifier == nil || !m.notificationsEnabled {
		return
	}
	m.send(notify.Notification{
		Title:      "Stem separation failed",
		Body:       message,
		Icon:       notify.IconError,
		Timeout:    notificationTimeout,
		ReplacesID: m.lastNotificationID,
		Urgency:    notify.UrgencyNormal,
	})
}

func (m *Model) send(n notify.Notification) {
	id, err := m.notifier.Notify(n)
	if err != nil {
		return
	}
	if id != 0 {
		m.lastNotificationID = id
	}
}
