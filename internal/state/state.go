// Package state keeps the history of sources the user loaded.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/stems/internal/db"
)

const (
	appName    = "stems"
	dbFileName = "state.db"

	// MaxRecent bounds the stored history.
	MaxRecent = 50
)

type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the state database in the XDG data dir.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the state database at path; ":memory:" keeps it in memory.
func OpenAt(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Manager{db: conn, now: time.Now}, nil
}

// Close closes the database connection.
func (m *Manager) Close() error {
	return m.db.Close()
}

// AddRecent records source as the most recent load.
func (m *Manager) AddRecent(source string) error {
	return addRecent(m.db, source, m.now(), MaxRecent)
}

// Recent returns up to limit sources, most recent first.
func (m *Manager) Recent(limit int) ([]string, error) {
	return getRecent(m.db, limit)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
