package audio_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/audio"
)

func TestPromoteLatest_CopiesHighestChunkAndRemovesSource(t *testing.T) {
	ctx := context.Background()
	store, root, uploads := newTestStore(t)

	_, _, err := store.Append(ctx, "P1", "S1", "VJzb", "wav", []byte("old take"))
	require.NoError(t, err)
	_, _, err = store.Append(ctx, "P1", "S1", "VJzb", "wav", []byte("latest take"))
	require.NoError(t, err)

	dst, err := store.PromoteLatest(ctx, "P1", "S1", "VJzb")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(uploads, "speech_recorder_uploads", "P1", "S1", "VJzb.wav"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("latest take"), data)

	// the source of the promoted chunk is gone, earlier takes remain
	_, err = os.Stat(filepath.Join(root, "P1", "S1", "VJzb", "1.wav"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "P1", "S1", "VJzb", "0.wav"))
	require.NoError(t, err)
}

func TestPromoteLatest_NoChunks(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	_, err := store.PromoteLatest(ctx, "P1", "S1", "empty")
	require.ErrorIs(t, err, audio.ErrNoChunks)
}

func TestPromoteLatest_MissingSourceAbortsCleanly(t *testing.T) {
	ctx := context.Background()
	store, root, uploads := newTestStore(t)

	// a directory entry that parses as a sequence but cannot be opened
	dir := filepath.Join(root, "P1", "S1", "item")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "0.wav"), 0o755))

	_, err := store.PromoteLatest(ctx, "P1", "S1", "item")
	require.Error(t, err)

	// no partial destination file left behind
	_, err = os.Stat(filepath.Join(uploads, "speech_recorder_uploads", "P1", "S1", "item.wav"))
	require.True(t, os.IsNotExist(err))
}
