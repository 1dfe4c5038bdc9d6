package storage

import (
	"context"
	"testing"
	"time"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompletion(instance string, family domain.PhaseFamily, completedAt time.Time) domain.PhaseCompletion {
	planned := 1500
	if family == domain.FamilyBreak {
		planned = 300
	}
	return domain.PhaseCompletion{
		Instance:       instance,
		Family:         family,
		PlannedSeconds: planned,
		CompletedAt:    completedAt,
	}
}

func TestHistoryRepository_RecordAndList(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordCompletion(ctx, testCompletion("key-1", domain.FamilyWork, base)))
	require.NoError(t, store.RecordCompletion(ctx, testCompletion("key-1", domain.FamilyBreak, base.Add(30*time.Minute))))
	require.NoError(t, store.RecordCompletion(ctx, testCompletion("key-2", domain.FamilyWork, base.Add(time.Hour))))

	recs, err := store.ListRecent(ctx, base.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Newest first.
	assert.Equal(t, "key-2", recs[0].Instance)
	assert.Equal(t, domain.FamilyBreak, recs[1].Family)
	assert.Equal(t, domain.FamilyWork, recs[2].Family)

	// Every record got an id assigned.
	for _, rec := range recs {
		assert.NotEmpty(t, rec.ID)
	}

	// The since bound excludes older records.
	recent, err := store.ListRecent(ctx, base.Add(45*time.Minute))
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestHistoryRepository_ListEmpty(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer store.Close()

	recs, err := store.ListRecent(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHistoryRepository_PreservesForcedFlag(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	rec := testCompletion("key-1", domain.FamilyWork, time.Now().UTC())
	rec.Forced = true
	rec.CycleIndex = 2
	require.NoError(t, store.RecordCompletion(ctx, rec))

	recs, err := store.ListRecent(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Forced)
	assert.Equal(t, 2, recs[0].CycleIndex)
}

func TestHistoryRepository_DailySummary(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// Two work phases (one skipped), one break today; one work yesterday.
	require.NoError(t, store.RecordCompletion(ctx, testCompletion("k", domain.FamilyWork, day.Add(9*time.Hour))))
	skipped := testCompletion("k", domain.FamilyWork, day.Add(10*time.Hour))
	skipped.Forced = true
	require.NoError(t, store.RecordCompletion(ctx, skipped))
	require.NoError(t, store.RecordCompletion(ctx, testCompletion("k", domain.FamilyBreak, day.Add(11*time.Hour))))
	require.NoError(t, store.RecordCompletion(ctx, testCompletion("k", domain.FamilyWork, day.Add(-3*time.Hour))))

	summary, err := store.GetDailySummary(ctx, day.Add(12*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.WorkCompleted)
	assert.Equal(t, 1, summary.BreaksTaken)
	assert.Equal(t, 1, summary.ForcedSkips)
	assert.Equal(t, 50*time.Minute, summary.TotalWorkTime)
}
