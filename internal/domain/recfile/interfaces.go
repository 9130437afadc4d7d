package recfile

import (
	"context"

	"github.com/spraklab/wsrng-server/internal/event"
)

// Repository provides persistence for recfiles.
type Repository interface {
	Insert(ctx context.Context, rec *Recfile) error
	List(ctx context.Context, project, sessionID string) ([]Recfile, error)
}

// Dispatcher delivers lifecycle events to handler modules.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt event.Event)
}
