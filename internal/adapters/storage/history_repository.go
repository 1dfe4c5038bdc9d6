package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/ports"
)

// historyRepository implements ports.History on a SQL database.
type historyRepository struct {
	db *sql.DB
}

var _ ports.History = (*historyRepository)(nil)

func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completions (
		id TEXT PRIMARY KEY,
		instance TEXT NOT NULL,
		family TEXT NOT NULL,
		planned_seconds INTEGER NOT NULL,
		cycle_index INTEGER NOT NULL,
		forced INTEGER NOT NULL,
		completed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completions_completed ON completions(completed_at);
	CREATE INDEX IF NOT EXISTS idx_completions_instance ON completions(instance);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// RecordCompletion implements ports.HistoryRecorder.
func (r *historyRepository) RecordCompletion(ctx context.Context, rec domain.PhaseCompletion) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completions (id, instance, family, planned_seconds, cycle_index, forced, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Instance, string(rec.Family), rec.PlannedSeconds, rec.CycleIndex,
		boolToInt(rec.Forced), rec.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// ListRecent implements ports.History.
func (r *historyRepository) ListRecent(ctx context.Context, since time.Time) ([]domain.PhaseCompletion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, instance, family, planned_seconds, cycle_index, forced, completed_at
		 FROM completions WHERE completed_at >= ? ORDER BY completed_at DESC`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var recs []domain.PhaseCompletion
	for rows.Next() {
		var rec domain.PhaseCompletion
		var family string
		var forced int
		if err := rows.Scan(&rec.ID, &rec.Instance, &family, &rec.PlannedSeconds,
			&rec.CycleIndex, &forced, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		rec.Family = domain.PhaseFamily(family)
		rec.Forced = forced != 0
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetDailySummary implements ports.History.
func (r *historyRepository) GetDailySummary(ctx context.Context, t time.Time) (*domain.DailySummary, error) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := r.db.QueryContext(ctx,
		`SELECT family, planned_seconds, forced FROM completions
		 WHERE completed_at >= ? AND completed_at < ?`,
		dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summary: %w", err)
	}
	defer rows.Close()

	summary := &domain.DailySummary{Date: dayStart}
	for rows.Next() {
		var family string
		var planned, forced int
		if err := rows.Scan(&family, &planned, &forced); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		switch domain.PhaseFamily(family) {
		case domain.FamilyWork:
			summary.WorkCompleted++
			summary.TotalWorkTime += time.Duration(planned) * time.Second
		case domain.FamilyBreak:
			summary.BreaksTaken++
		}
		if forced != 0 {
			summary.ForcedSkips++
		}
	}
	return summary, rows.Err()
}

// Close closes the database connection.
func (r *historyRepository) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
