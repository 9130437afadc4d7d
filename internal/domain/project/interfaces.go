package project

import (
	"context"

	"github.com/spraklab/wsrng-server/internal/event"
)

// Repository provides persistence for projects.
type Repository interface {
	Find(ctx context.Context, name string) (*Project, error)
	Insert(ctx context.Context, proj *Project) error
}

// Dispatcher delivers lifecycle events to handler modules.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt event.Event)
}
