package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/repository"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

func TestSessionRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := session.FromDocument(map[string]any{
		"sessionId": "S1",
		"project":   "P1",
		"status":    "CREATED",
		"type":      "NORM",
		"debugMode": true,
		"customTag": "kept as-is",
	})
	require.NoError(t, repo.Insert(ctx, sess))

	found, err := repo.Find(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, "S1", found.SessionID)
	require.Equal(t, "P1", found.Project)
	require.Equal(t, session.StatusCreated, found.Status)
	// fields outside the known set survive the round trip
	require.Equal(t, "kept as-is", found.Extra["customTag"])
}

func TestSessionRepository_FindMissing(t *testing.T) {
	repo := sqlite.NewSessionRepository(newTestDB(t))

	_, err := repo.Find(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{SessionID: "S1", Project: "P1", Status: session.StatusCreated}
	require.NoError(t, repo.Insert(ctx, sess))
	require.ErrorIs(t, repo.Insert(ctx, sess), repository.ErrDuplicate)
}

func TestSessionRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{SessionID: "S1", Project: "P1", Status: session.StatusCreated}
	require.NoError(t, repo.Insert(ctx, sess))

	sess.Status = session.StatusCompleted
	require.NoError(t, repo.Replace(ctx, "S1", sess))

	found, err := repo.Find(ctx, "S1")
	require.NoError(t, err)
	require.Equal(t, session.StatusCompleted, found.Status)
}

func TestSessionRepository_ReplaceMissing(t *testing.T) {
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{SessionID: "gone", Project: "P1", Status: session.StatusLoaded}
	err := repo.Replace(context.Background(), "gone", sess)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
