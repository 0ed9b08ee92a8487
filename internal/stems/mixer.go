package stems

// GainChange is emitted when a track's gain is set through the Mixer.
type GainChange struct {
	Name string
	Gain float64
}

// Mixer is the per-track gain surface. It only reaches tracks of the current
// registry, so a gain change for a stem of a replaced batch is rejected.
type Mixer struct {
	registry *Registry
	onChange func(GainChange)
}

// NewMixer creates a mixer over registry. onChange may be nil.
func NewMixer(registry *Registry, onChange func(GainChange)) *Mixer {
	return &Mixer{registry: registry, onChange: onChange}
}

// SetTrackGain sets the named track's gain and returns the clamped value.
func (m *Mixer) SetTrackGain(name string, gain float64) (float64, error) {
	t, ok := m.registry.Get(name)
	if !ok {
		return 0, &UnknownTrackError{Name: name}
	}
	applied := t.SetGain(gain)
	if m.onChange != nil {
		m.onChange(GainChange{Name: name, Gain: applied})
	}
	return applied, nil
}

// TrackGain returns the named track's gain.
func (m *Mixer) TrackGain(name string) (float64, error) {
	t, ok := m.registry.Get(name)
	if !ok {
		return 0, &UnknownTrackError{Name: name}
	}
	return t.Gain(), nil
}
