package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	AddRecent(source string) error
	Recent(limit int) ([]string, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
