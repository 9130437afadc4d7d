package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// uploadsDirName is the fixed directory the companion tooling watches.
const uploadsDirName = "speech_recorder_uploads"

// ErrNoChunks is returned when a relocation source directory holds no
// sequenced chunks.
var ErrNoChunks = errors.New("no chunks recorded for item")

// PromoteLatest relocates the highest-numbered chunk for the key to
// <uploadsRoot>/speech_recorder_uploads/<project>/<session>/<item>.<ext>
// and removes the source file. Source and destination may live on
// different volumes, so the move is copy-then-delete rather than a rename.
// A failed copy aborts with no destination file left behind; a failed
// delete after a successful copy is logged and tolerated.
func (s *Store) PromoteLatest(ctx context.Context, projectName, sessionID, itemCode string) (string, error) {
	dir := s.itemDir(projectName, sessionID, itemCode)

	keyLock := s.keyLock(dir)
	keyLock.Lock()
	defer keyLock.Unlock()

	name, err := latestChunk(dir)
	if err != nil {
		return "", err
	}

	_, ext, _ := strings.Cut(name, ".")
	src := filepath.Join(dir, name)
	dst := filepath.Join(s.uploadsRoot, uploadsDirName, projectName, sessionID, itemCode+"."+ext)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating uploads directory: %w", err)
	}
	if err := copyFile(src, dst); err != nil {
		s.logger.Error("chunk relocation failed", "src", src, "dst", dst, "error", err)
		return "", fmt.Errorf("copying chunk: %w", err)
	}
	if err := os.Remove(src); err != nil {
		// The copy already succeeded; the leftover source is harmless.
		s.logger.Warn("failed to remove relocated chunk source", "src", src, "error", err)
	}

	return dst, nil
}

// latestChunk returns the name of the highest-numbered chunk in dir.
func latestChunk(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoChunks
		}
		return "", fmt.Errorf("listing chunk directory: %w", err)
	}

	best := -1
	name := ""
	for _, entry := range entries {
		seq, ok := parseSequence(entry.Name())
		if !ok {
			continue
		}
		if seq > best {
			best = seq
			name = entry.Name()
		}
	}
	if best < 0 {
		return "", ErrNoChunks
	}
	return name, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
