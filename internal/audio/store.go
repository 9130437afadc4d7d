// Package audio stores uploaded speech chunks on durable storage. Chunks
// for one (project, session, item) key live in one directory and are named
// by a monotonically increasing sequence number plus extension, a layout
// shared with external tooling and therefore kept stable.
package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// seqLockName is the per-directory lock file guarding sequence assignment.
// Its name has no integer prefix so the sequence scan skips it.
const seqLockName = ".seq.lock"

// Store writes sequenced audio chunks under a storage root. Relocated
// chunks go to a separate uploads root, which may be a different volume.
type Store struct {
	root        string
	uploadsRoot string
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a chunk store rooted at root, relocating promoted
// chunks under uploadsRoot.
func NewStore(root, uploadsRoot string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:        root,
		uploadsRoot: uploadsRoot,
		logger:      logger,
		locks:       make(map[string]*sync.Mutex),
	}
}

// Append assigns the next sequence number for the (project, session, item)
// key and durably writes the chunk as <seq>.<ext>. Sequence assignment is
// serialized per key: an in-process mutex covers concurrent requests, and
// a lock file in the item directory covers other server processes sharing
// the volume. Listing a stale directory can therefore never hand two
// uploads the same number.
func (s *Store) Append(ctx context.Context, projectName, sessionID, itemCode, ext string, data []byte) (int, string, error) {
	dir := s.itemDir(projectName, sessionID, itemCode)

	keyLock := s.keyLock(dir)
	keyLock.Lock()
	defer keyLock.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, "", fmt.Errorf("creating chunk directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, seqLockName))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return 0, "", fmt.Errorf("locking chunk directory: %w", err)
	}
	if !locked {
		return 0, "", fmt.Errorf("locking chunk directory %s: lock not acquired", dir)
	}
	defer fl.Unlock()

	next, err := nextSequence(dir)
	if err != nil {
		return 0, "", err
	}

	path := filepath.Join(dir, strconv.Itoa(next)+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, "", fmt.Errorf("writing chunk: %w", err)
	}

	return next, path, nil
}

func (s *Store) itemDir(projectName, sessionID, itemCode string) string {
	return filepath.Join(s.root, projectName, sessionID, itemCode)
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// nextSequence scans dir for <integer>.<ext> entries and returns the
// highest found plus one, or 0 for an empty or absent directory. Entries
// without an integer prefix are ignored.
func nextSequence(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("listing chunk directory: %w", err)
	}

	next := 0
	for _, entry := range entries {
		seq, ok := parseSequence(entry.Name())
		if !ok {
			continue
		}
		if seq >= next {
			next = seq + 1
		}
	}
	return next, nil
}

func parseSequence(name string) (int, bool) {
	prefix, _, _ := strings.Cut(name, ".")
	seq, err := strconv.Atoi(prefix)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
