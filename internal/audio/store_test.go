package audio_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/audio"
)

func newTestStore(t *testing.T) (*audio.Store, string, string) {
	t.Helper()
	root := t.TempDir()
	uploads := t.TempDir()
	return audio.NewStore(root, uploads, nil), root, uploads
}

func TestAppend_SequencesFromZero(t *testing.T) {
	ctx := context.Background()
	store, root, _ := newTestStore(t)

	seq, path, err := store.Append(ctx, "P1", "S1", "VJzb", "wav", []byte("first"))
	require.NoError(t, err)
	require.Equal(t, 0, seq)
	require.Equal(t, filepath.Join(root, "P1", "S1", "VJzb", "0.wav"), path)

	seq, path, err = store.Append(ctx, "P1", "S1", "VJzb", "wav", []byte("second"))
	require.NoError(t, err)
	require.Equal(t, 1, seq)
	require.Equal(t, filepath.Join(root, "P1", "S1", "VJzb", "1.wav"), path)

	// the first chunk is untouched
	data, err := os.ReadFile(filepath.Join(root, "P1", "S1", "VJzb", "0.wav"))
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)
}

func TestAppend_ContinuesAfterGap(t *testing.T) {
	ctx := context.Background()
	store, root, _ := newTestStore(t)

	dir := filepath.Join(root, "P1", "S1", "item")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.wav"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "5.wav"), []byte("b"), 0o644))
	// non-numeric entries are ignored by the scan
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	seq, _, err := store.Append(ctx, "P1", "S1", "item", "wav", []byte("c"))
	require.NoError(t, err)
	require.Equal(t, 6, seq)
}

func TestAppend_SeparateItemsSequenceIndependently(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	seq, _, err := store.Append(ctx, "P1", "S1", "itemA", "wav", []byte("a"))
	require.NoError(t, err)
	require.Equal(t, 0, seq)

	seq, _, err = store.Append(ctx, "P1", "S1", "itemB", "wav", []byte("b"))
	require.NoError(t, err)
	require.Equal(t, 0, seq)
}

func TestAppend_ConcurrentUploadsGetDistinctSequences(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	const n = 20
	seqs := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, _, err := store.Append(ctx, "P1", "S1", "VJzb", "wav", []byte("chunk"))
			require.NoError(t, err)
			seqs <- seq
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int]bool, n)
	for seq := range seqs {
		require.False(t, seen[seq], "sequence %d assigned twice", seq)
		seen[seq] = true
	}
	// no gaps: exactly {0..n-1}
	for i := 0; i < n; i++ {
		require.True(t, seen[i], "sequence %d missing", i)
	}
}
