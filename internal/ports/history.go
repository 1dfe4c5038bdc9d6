package ports

import (
	"context"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
)

// HistoryRecorder receives completed-phase records from the engine.
// Recording is observational; the engine ignores errors.
type HistoryRecorder interface {
	RecordCompletion(ctx context.Context, rec domain.PhaseCompletion) error
}

// History is the full storage port used by the CLI layer.
type History interface {
	HistoryRecorder

	// ListRecent returns completions since the given time, newest first.
	ListRecent(ctx context.Context, since time.Time) ([]domain.PhaseCompletion, error)

	// GetDailySummary aggregates completions for the day containing t.
	GetDailySummary(ctx context.Context, t time.Time) (*domain.DailySummary, error)

	Close() error
}
