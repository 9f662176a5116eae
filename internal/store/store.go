// Package store persists project settings and saved estimate snapshots.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/norms"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// timeLayout has fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store reads and writes the estimates database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New returns a Store over db.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Settings returns the project settings singleton.
func (s *Store) Settings(ctx context.Context) (estimate.Project, error) {
	var p estimate.Project
	var wall, congestion string
	err := s.db.QueryRowContext(ctx, `
		SELECT title, rate_expert, rate_master, rate_assistant, wall, congestion, distance_km
		FROM project_settings
		WHERE id = 1
	`).Scan(
		&p.Title,
		&p.Rates.Expert,
		&p.Rates.Master,
		&p.Rates.Assistant,
		&wall,
		&congestion,
		&p.Factors.DistanceKm,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return estimate.Project{}, fmt.Errorf("project settings: %w", ErrNotFound)
		}
		return estimate.Project{}, fmt.Errorf("query project settings: %w", err)
	}
	p.Factors.Wall = norms.WallMaterial(wall)
	p.Factors.Congestion = norms.Congestion(congestion)
	return p, nil
}

// SaveSettings replaces the project settings singleton.
func (s *Store) SaveSettings(ctx context.Context, p estimate.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_settings (
			id, title, rate_expert, rate_master, rate_assistant, wall, congestion, distance_km
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			rate_expert = excluded.rate_expert,
			rate_master = excluded.rate_master,
			rate_assistant = excluded.rate_assistant,
			wall = excluded.wall,
			congestion = excluded.congestion,
			distance_km = excluded.distance_km,
			updated_at = CURRENT_TIMESTAMP
	`,
		p.Title,
		p.Rates.Expert,
		p.Rates.Master,
		p.Rates.Assistant,
		string(p.Factors.Wall),
		string(p.Factors.Congestion),
		p.Factors.DistanceKm,
	)
	if err != nil {
		return fmt.Errorf("save project settings: %w", err)
	}
	return nil
}

// Snapshot is a saved estimate. Figures are stored as computed and read back
// without recalculation.
type Snapshot struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	Document  json.RawMessage `json:"document"`
	Totals    json.RawMessage `json:"totals"`
	Breakdown json.RawMessage `json:"breakdown"`
}

// SnapshotItem is a row of the snapshot list.
type SnapshotItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	Total     estimate.Result `json:"total"`
}

// Totals is the figure set stored with every snapshot.
type Totals struct {
	Works         estimate.Result `json:"works"`
	Commissioning estimate.Result `json:"commissioning"`
	Total         estimate.Result `json:"total"`
}

// SaveEstimate stores a snapshot of doc and its summary and returns it with
// ID and creation time filled in.
func (s *Store) SaveEstimate(ctx context.Context, title, notes string, doc any, sum estimate.Summary) (Snapshot, error) {
	document, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode document: %w", err)
	}
	commissioning := estimate.Result{}
	if sum.CommissioningIncluded {
		commissioning = sum.Commissioning.Result
	}
	totals, err := json.Marshal(Totals{Works: sum.Works, Commissioning: commissioning, Total: sum.Total})
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode totals: %w", err)
	}
	breakdown, err := json.Marshal(sum)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode breakdown: %w", err)
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		Title:     title,
		Notes:     notes,
		CreatedAt: s.now().UTC(),
		Document:  document,
		Totals:    totals,
		Breakdown: breakdown,
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO estimates (id, title, notes, created_at, document_json, totals_json, breakdown_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		snap.ID,
		snap.Title,
		snap.Notes,
		snap.CreatedAt.Format(timeLayout),
		string(snap.Document),
		string(snap.Totals),
		string(snap.Breakdown),
	); err != nil {
		return Snapshot{}, fmt.Errorf("insert estimate: %w", err)
	}
	return snap, nil
}

// ListEstimates returns saved snapshots newest first. A non-empty query
// keeps those whose title or notes contain it.
func (s *Store) ListEstimates(ctx context.Context, query string) ([]SnapshotItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, totals_json
		FROM estimates
		WHERE (? = '' OR title LIKE ? OR notes LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	items := make([]SnapshotItem, 0)
	for rows.Next() {
		var item SnapshotItem
		var created, totalsJSON string
		if err := rows.Scan(&item.ID, &item.Title, &created, &totalsJSON); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		if item.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", item.ID, err)
		}
		item.Total = extractTotal(totalsJSON)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}
	return items, nil
}

func extractTotal(totalsJSON string) estimate.Result {
	var t Totals
	if err := json.Unmarshal([]byte(totalsJSON), &t); err != nil {
		return estimate.Result{}
	}
	return t.Total
}

// Estimate returns the snapshot with the given ID.
func (s *Store) Estimate(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	var created, document, totals, breakdown string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, notes, created_at, document_json, totals_json, breakdown_json
		FROM estimates
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Title, &snap.Notes, &created, &document, &totals, &breakdown)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, fmt.Errorf("estimate %s: %w", id, ErrNotFound)
		}
		return Snapshot{}, fmt.Errorf("query estimate %s: %w", id, err)
	}
	if snap.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Snapshot{}, fmt.Errorf("parse created_at of %s: %w", id, err)
	}
	snap.Document = json.RawMessage(document)
	snap.Totals = json.RawMessage(totals)
	snap.Breakdown = json.RawMessage(breakdown)
	return snap, nil
}
