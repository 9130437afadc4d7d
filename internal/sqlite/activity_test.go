package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/activity"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

func TestActivityRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewActivityRepository(newTestDB(t))

	first := &activity.Entry{EventType: "sessionCreated", Project: "P1", SessionID: "S1"}
	require.NoError(t, repo.Append(ctx, first))
	require.NotZero(t, first.ID)

	second := &activity.Entry{
		EventType: "sessionFileUpload", Project: "P1", SessionID: "S1",
		ItemCode: "VJzb", Details: `{"sequence":0}`,
	}
	require.NoError(t, repo.Append(ctx, second))

	entries, err := repo.List(ctx, "S1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	require.Equal(t, "sessionFileUpload", entries[0].EventType)
	require.Equal(t, "VJzb", entries[0].ItemCode)
	require.Equal(t, "sessionCreated", entries[1].EventType)
}

func TestActivityRepository_ListScopedToSession(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewActivityRepository(newTestDB(t))

	require.NoError(t, repo.Append(ctx, &activity.Entry{EventType: "sessionCreated", SessionID: "S1"}))
	require.NoError(t, repo.Append(ctx, &activity.Entry{EventType: "sessionCreated", SessionID: "S2"}))

	entries, err := repo.List(ctx, "S1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "S1", entries[0].SessionID)
}
