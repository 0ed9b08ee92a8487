package app

// nudgeGain moves the selected stem gain by delta. A muted stem is unmuted
// from the gain it had before muting.
func (m *Model) nudgeGain(delta float64) {
	t, ok := m.selected()
	if !ok {
		return
	}
	gain := t.Gain
	if saved, muted := m.muted[t.Name]; muted {
		gain = saved
		delete(m.muted, t.Name)
	}
	_, _ = m.session.SetTrackGain(t.Name, gain+delta)
}

// toggleMute silences the selected stem, remembering its gain, or restores it.
func (m *Model) toggleMute() {
	t, ok := m.selected()
	if !ok {
		return
	}
	if saved, muted := m.muted[t.Name]; muted {
		delete(m.muted, t.Name)
		_, _ = m.session.SetTrackGain(t.Name, saved)
		return
	}
	m.mute(t.Name, t.Gain)
}

func (m *Model) mute(name string, gain float64) {
	if _, muted := m.muted[name]; muted {
		return
	}
	if _, err := m.session.SetTrackGain(name, 0); err == nil {
		m.muted[name] = gain
	}
}

func (m *Model) unmute(name string) {
	saved, muted := m.muted[name]
	if !muted {
		return
	}
	delete(m.muted, name)
	_, _ = m.session.SetTrackGain(name, saved)
}

// toggleSolo mutes every other stem. Soloing the stem that is already the
// only audible one unmutes everything.
func (m *Model) toggleSolo() {
	sel, ok := m.selected()
	if !ok {
		return
	}
	if m.isSoloed(sel.Name) {
		for _, t := range m.snapshot.Tracks {
			m.unmute(t.Name)
		}
		return
	}
	m.unmute(sel.Name)
	for _, t := range m.snapshot.Tracks {
		if t.Name != sel.Name {
			m.mute(t.Name, t.Gain)
		}
	}
}

func (m *Model) isSoloed(name string) bool {
	if _, muted := m.muted[name]; muted || len(m.snapshot.Tracks) < 2 {
		return false
	}
	for _, t := range m.snapshot.Tracks {
		if _, muted := m.muted[t.Name]; t.Name != name && !muted {
			return false
		}
	}
	return true
}

// isMuted reports whether the named stem was muted from the shell.
func (m Model) isMuted(name string) bool {
	_, muted := m.muted[name]
	return muted
}
