package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Clawdomoto/moto-dashboard/internal/memorylog"
)

func TestActivityStoreInsertAndList(t *testing.T) {
	db := setupTestDatabase(t)
	s := NewActivityStore(db)
	ctx := context.Background()

	inserted, err := s.Insert(ctx, memorylog.Activity{
		Timestamp:   1760000000000,
		ActionType:  memorylog.ActionAnalysis,
		Description: "Ran the nightly backtest.",
		Status:      memorylog.StatusCompleted,
		Source:      "memory/2026-01-15.md",
	})
	require.NoError(t, err)
	require.NotZero(t, inserted.ID)
	require.Nil(t, inserted.TokensUsed)

	listed, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Ran the nightly backtest.", listed[0].Description)
}

func TestActivityStoreListNewestFirst(t *testing.T) {
	db := setupTestDatabase(t)
	s := NewActivityStore(db)
	ctx := context.Background()

	batch := []memorylog.Activity{
		{Timestamp: 100, ActionType: memorylog.ActionNote, Description: "old", Status: memorylog.StatusCompleted, Source: "memory/a.md"},
		{Timestamp: 300, ActionType: memorylog.ActionNote, Description: "new", Status: memorylog.StatusCompleted, Source: "memory/b.md"},
		{Timestamp: 200, ActionType: memorylog.ActionNote, Description: "mid", Status: memorylog.StatusCompleted, Source: "memory/c.md"},
	}
	require.NoError(t, s.InsertBatch(ctx, batch))

	listed, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, "new", listed[0].Description)
	require.Equal(t, "mid", listed[1].Description)
	require.Equal(t, "old", listed[2].Description)
}

func TestActivityStoreListHonorsLimit(t *testing.T) {
	db := setupTestDatabase(t)
	s := NewActivityStore(db)
	ctx := context.Background()

	var batch []memorylog.Activity
	for i := 0; i < 5; i++ {
		batch = append(batch, memorylog.Activity{
			Timestamp:   int64(i),
			ActionType:  memorylog.ActionNote,
			Description: "entry",
			Status:      memorylog.StatusCompleted,
			Source:      "memory/x.md",
		})
	}
	require.NoError(t, s.InsertBatch(ctx, batch))

	listed, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestActivityStoreClear(t *testing.T) {
	db := setupTestDatabase(t)
	s := NewActivityStore(db)
	ctx := context.Background()

	require.NoError(t, s.InsertBatch(ctx, []memorylog.Activity{
		{Timestamp: 1, ActionType: memorylog.ActionNote, Description: "x", Status: memorylog.StatusCompleted, Source: "memory/x.md"},
	}))
	require.NoError(t, s.Clear(ctx))

	listed, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestActivityStoreInsertBatchEmpty(t *testing.T) {
	db := setupTestDatabase(t)
	s := NewActivityStore(db)
	require.NoError(t, s.InsertBatch(context.Background(), nil))
}
