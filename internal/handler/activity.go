package handler

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/activity"
	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/event"
)

// Activity records an audit row for every dispatched event, giving the
// fire-and-forget dispatch a persistent trace.
type Activity struct {
	repo   activity.Repository
	logger *slog.Logger
}

// NewActivity creates the activity handler module.
func NewActivity(repo activity.Repository, logger *slog.Logger) *Activity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Activity{repo: repo, logger: logger}
}

// Name implements event.Handler.
func (a *Activity) Name() string { return "activity" }

// Handle implements event.Handler.
func (a *Activity) Handle(ctx context.Context, evt event.Event) error {
	entry := &activity.Entry{EventType: string(evt.Type)}

	switch data := evt.Data.(type) {
	case session.CreatedEventData:
		entry.Project = data.Session.Project
		entry.SessionID = data.Session.SessionID
	case session.UploadEventData:
		entry.Project = data.Session.Project
		entry.SessionID = data.Session.SessionID
		entry.ItemCode = data.ItemCode
	case session.PatchEventData:
		entry.Project = data.ProjectName
		entry.SessionID = data.Session.SessionID
		entry.Details = marshalDetails(data.Patch)
	case session.PatchedEventData:
		entry.Project = data.Session.Project
		entry.SessionID = data.Session.SessionID
		entry.Details = marshalDetails(data.Patch)
	case *recfile.Recfile:
		entry.Project = data.Project
		entry.SessionID = data.Session
		entry.ItemCode = data.Recording.ItemCode
	case *project.Project:
		entry.Project = data.Name
	}

	if err := a.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending activity entry: %w", err)
	}
	return nil
}

func marshalDetails(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
