package session

import (
	"context"

	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/event"
)

// Repository provides persistence for sessions.
type Repository interface {
	Find(ctx context.Context, sessionID string) (*Session, error)
	Insert(ctx context.Context, sess *Session) error
	// Replace stores the full session document, failing with
	// repository.ErrNotFound when no session matches.
	Replace(ctx context.Context, sessionID string, sess *Session) error
}

// ProjectService resolves (and lazily creates) the owning project.
type ProjectService interface {
	Ensure(ctx context.Context, name string) (*project.Project, error)
}

// RecfileBuilder persists the metadata record for an uploaded chunk.
type RecfileBuilder interface {
	Create(ctx context.Context, req recfile.CreateRequest) (*recfile.Recfile, error)
}

// AudioStore stores sequenced audio chunks on durable storage.
type AudioStore interface {
	// Append assigns the next sequence number for the (project, session,
	// item) key and writes the chunk, returning the sequence and the path
	// of the written file.
	Append(ctx context.Context, projectName, sessionID, itemCode, ext string, data []byte) (int, string, error)
	// PromoteLatest relocates the highest-numbered chunk for the key into
	// the uploads area and returns the destination path.
	PromoteLatest(ctx context.Context, projectName, sessionID, itemCode string) (string, error)
}

// Dispatcher delivers lifecycle events to handler modules.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt event.Event)
}
