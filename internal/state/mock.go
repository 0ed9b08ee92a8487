package state

import "slices"

// Mock is a test double for Manager.
type Mock struct {
	recent []string
	closed bool
}

// NewMock creates a mock holding sources, most recent first.
func NewMock(sources ...string) *Mock {
	return &Mock{recent: slices.Clone(sources)}
}

func (m *Mock) AddRecent(source string) error {
	m.recent = slices.DeleteFunc(m.recent, func(s string) bool { return s == source })
	m.recent = slices.Insert(m.recent, 0, source)
	if len(m.recent) > MaxRecent {
		m.recent = m.recent[:MaxRecent]
	}
	return nil
}

func (m *Mock) Recent(limit int) ([]string, error) {
	if limit < len(m.recent) {
		return slices.Clone(m.recent[:limit]), nil
	}
	return slices.Clone(m.recent), nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
