package seed

import (
	"database/sql"
	"fmt"

	"github.com/Simplici0/heatquote/internal/estimate"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureProjectSettings(tx, estimate.DefaultProject(), &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureProjectSettings(tx *sql.Tx, p estimate.Project, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM project_settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check project settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO project_settings (
			id,
			title,
			rate_expert,
			rate_master,
			rate_assistant,
			wall,
			congestion,
			distance_km
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.Title,
		p.Rates.Expert,
		p.Rates.Master,
		p.Rates.Assistant,
		string(p.Factors.Wall),
		string(p.Factors.Congestion),
		p.Factors.DistanceKm,
	); err != nil {
		return fmt.Errorf("insert project settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
