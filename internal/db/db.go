package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas are applied by modernc.org/sqlite to every new connection.
const connPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenDB opens the SQLite database at path and brings its schema up to date.
// File databases get their directory created and run in WAL mode. An
// in-memory database is pinned to one connection so the pool never opens a
// second, empty one.
func OpenDB(path string) (*sql.DB, error) {
	inMemory := path == MemoryPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := prepare(conn, inMemory); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func prepare(conn *sql.DB, inMemory bool) error {
	if inMemory {
		conn.SetMaxOpenConns(1)
	} else if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("setting WAL mode: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
