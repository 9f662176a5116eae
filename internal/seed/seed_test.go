package seed

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Simplici0/heatquote/internal/db"
	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/migrations"
	"github.com/Simplici0/heatquote/internal/store"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 {
				t.Fatalf("expected 1 insert in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM project_settings`).Scan(&count); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 settings row, got %d", count)
	}

	p, err := store.New(database).Settings(context.Background())
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if p != estimate.DefaultProject() {
		t.Fatalf("seeded settings = %+v, want defaults", p)
	}
}

func TestRunKeepsEditedSettings(t *testing.T) {
	t.Parallel()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-edit.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	st := store.New(database)
	edited := estimate.DefaultProject()
	edited.Rates.Expert = 3000
	if err := st.SaveSettings(context.Background(), edited); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("run seed: %v", err)
	}
	got, err := st.Settings(context.Background())
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if got.Rates.Expert != 3000 {
		t.Fatalf("seed overwrote settings: %+v", got)
	}
}

func TestRunRollsBackOnError(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer database.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO project_settings").WillReturnError(errors.New("readonly database"))
	mock.ExpectRollback()

	if _, err := Run(database); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
