package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/llehouerou/stems/internal/db"
)

func getRecent(conn *sql.DB, limit int) ([]string, error) {
	rows, err := conn.Query(`
		SELECT source FROM recent_sources
		ORDER BY loaded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// addRecent moves source to the top of the history and drops entries
// beyond keep.
func addRecent(conn *sql.DB, source string, now time.Time, keep int) error {
	return db.WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		// Re-inserting gives the row a fresh rowid, which orders ties
		if _, err := tx.Exec(`DELETE FROM recent_sources WHERE source = ?`, source); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO recent_sources (source, loaded_at) VALUES (?, ?)
		`, source, now.Unix()); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM recent_sources WHERE rowid NOT IN (
				SELECT rowid FROM recent_sources
				ORDER BY loaded_at DESC, rowid DESC
				LIMIT ?
			)
		`, keep)
		return err
	})
}
