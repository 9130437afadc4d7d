package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

func testRecfile(seq int) *recfile.Recfile {
	return &recfile.Recfile{
		RecordingFileID: seq,
		Project:         "P1",
		Session:         "S1",
		Date:            time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Recording: recfile.Recording{
			ItemCode: "VJzb",
			MediaItems: []recfile.MediaItem{
				{AnnotationTemplate: true, Text: ""},
			},
		},
	}
}

func TestRecfileRepository_ListOrderedBySequence(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewRecfileRepository(newTestDB(t))

	require.NoError(t, repo.Insert(ctx, testRecfile(0)))
	require.NoError(t, repo.Insert(ctx, testRecfile(1)))
	require.NoError(t, repo.Insert(ctx, testRecfile(2)))

	recs, err := repo.List(ctx, "P1", "S1")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		require.Equal(t, i, rec.RecordingFileID)
		require.Equal(t, "VJzb", rec.Recording.ItemCode)
	}
}

func TestRecfileRepository_ListScopedToSession(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewRecfileRepository(newTestDB(t))

	require.NoError(t, repo.Insert(ctx, testRecfile(0)))
	other := testRecfile(0)
	other.Session = "S2"
	require.NoError(t, repo.Insert(ctx, other))

	recs, err := repo.List(ctx, "P1", "S1")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	recs, err = repo.List(ctx, "P1", "unknown")
	require.NoError(t, err)
	require.Empty(t, recs)
}
