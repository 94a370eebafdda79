package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stamped into the database's user_version pragma. Bump it
// whenever schema.sql changes shape; Open refuses databases written by a
// newer build rather than silently misreading their standings rows.
const schemaVersion = 1

// DB wraps a sql.DB for the snapshot and standings store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path, applies the
// schema, and stamps the schema version. Simulate and load can race on the
// same file from separate invocations, so writes wait on a busy timeout
// instead of failing fast.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if version > schemaVersion {
		conn.Close()
		return nil, fmt.Errorf("database schema version %d is newer than this build supports (%d)",
			version, schemaVersion)
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if version < schemaVersion {
		if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("stamp schema version: %w", err)
		}
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
