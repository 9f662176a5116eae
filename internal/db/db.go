package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// connPragmas are applied by the driver to every new pooled connection.
var connPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// Open opens the estimates database at dbPath. See OpenContext.
func Open(dbPath string) (*sql.DB, error) {
	return OpenContext(context.Background(), dbPath)
}

// OpenContext opens the estimates SQLite database, creating its directory if
// needed, and validates connectivity. File databases run in WAL mode.
// ":memory:" yields a single-connection in-memory database.
func OpenContext(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath != memoryPath {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own database.
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if dbPath != memoryPath {
		if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL`); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable wal: %w", err)
		}
	}

	return db, nil
}

func dsn(dbPath string) string {
	params := make([]string, 0, len(connPragmas))
	for _, p := range connPragmas {
		params = append(params, "_pragma="+p)
	}
	return dbPath + "?" + strings.Join(params, "&")
}
