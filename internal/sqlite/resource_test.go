package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/repository"
	"github.com/spraklab/wsrng-server/internal/sqlite"
)

func TestResourceRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewResourceRepository(newTestDB(t))

	res := &resource.Resource{
		Project:  "P1",
		ScriptID: 1245,
		Name:     "prompt.png",
		MimeType: "image/png",
		Data:     "aGVsbG8=",
	}
	require.NoError(t, repo.Insert(ctx, res))
	require.NotZero(t, res.ID)

	found, err := repo.Find(ctx, "P1", "prompt.png")
	require.NoError(t, err)
	require.Equal(t, res, found)
}

func TestResourceRepository_PrefersProjectScopedRow(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewResourceRepository(newTestDB(t))

	shared := &resource.Resource{Name: "logo.png", MimeType: "image/png", Data: "c2hhcmVk"}
	require.NoError(t, repo.Insert(ctx, shared))
	scoped := &resource.Resource{Project: "P1", Name: "logo.png", MimeType: "image/png", Data: "c2NvcGVk"}
	require.NoError(t, repo.Insert(ctx, scoped))

	found, err := repo.Find(ctx, "P1", "logo.png")
	require.NoError(t, err)
	require.Equal(t, "c2NvcGVk", found.Data)

	// other projects fall back to the shared row
	found, err = repo.Find(ctx, "P2", "logo.png")
	require.NoError(t, err)
	require.Equal(t, "c2hhcmVk", found.Data)
}

func TestResourceRepository_FindMissing(t *testing.T) {
	repo := sqlite.NewResourceRepository(newTestDB(t))

	_, err := repo.Find(context.Background(), "P1", "nope.png")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceRepository_DuplicateNameWithinProject(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewResourceRepository(newTestDB(t))

	res := &resource.Resource{Project: "P1", Name: "prompt.png", MimeType: "image/png", Data: "YQ=="}
	require.NoError(t, repo.Insert(ctx, res))

	dup := &resource.Resource{Project: "P1", Name: "prompt.png", MimeType: "image/png", Data: "Yg=="}
	require.ErrorIs(t, repo.Insert(ctx, dup), repository.ErrDuplicate)
}
