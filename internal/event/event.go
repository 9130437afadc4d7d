package event

import "context"

// Type identifies a lifecycle event.
type Type string

const (
	SessionCreated    Type = "sessionCreated"
	SessionFileUpload Type = "sessionFileUpload"
	CreateRecfile     Type = "createRecfile"
	CreateProject     Type = "createProject"
	SessionComplete   Type = "sessionComplete"
	SessionRestarted  Type = "sessionRestarted"
	SessionPatched    Type = "sessionPatched"
)

// Event is a lifecycle notification delivered to handler modules.
type Event struct {
	Type Type
	Data any
}

// Handler is a registered collaborator notified of lifecycle events.
// Implementations own their external integration logic; errors they return
// are logged at the dispatcher boundary and never propagate.
type Handler interface {
	Name() string
	Handle(ctx context.Context, evt Event) error
}
