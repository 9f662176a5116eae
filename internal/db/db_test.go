package db

import (
	"path/filepath"
	"testing"
)

func TestOpen_File(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "data", "open.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_PragmasOnEveryConnection(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "pragmas.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()
	database.SetMaxIdleConns(0)

	for i := 0; i < 3; i++ {
		var fk, timeout int
		if err := database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
			t.Fatalf("query foreign_keys: %v", err)
		}
		if err := database.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
			t.Fatalf("query busy_timeout: %v", err)
		}
		if fk != 1 || timeout != 5000 {
			t.Fatalf("foreign_keys = %d, busy_timeout = %d", fk, timeout)
		}
	}
}

func TestOpen_MemorySharesOneDatabase(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n); err != nil {
		t.Fatalf("table not visible on the next query: %v", err)
	}
}

func TestDSN(t *testing.T) {
	got := dsn("x.db")
	want := "x.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
