package recfile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spraklab/wsrng-server/internal/event"
)

// Service builds and persists recfile metadata records.
type Service struct {
	repo   Repository
	events Dispatcher
	logger *slog.Logger
}

// NewService creates a new recfile service.
func NewService(repo Repository, events Dispatcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, events: events, logger: logger}
}

// CreateRequest describes a completed audio chunk upload.
type CreateRequest struct {
	Project  string
	Session  string
	ItemCode string
	// Sequence is the number the audio sequencer assigned to the chunk.
	Sequence int
	// Duration of the audio in milliseconds. Currently always zero; the
	// wav header is not parsed.
	Duration int
}

// Create persists the metadata record for an uploaded chunk and fires a
// createRecfile event. It must only be called after the chunk itself has
// been durably stored; failures are not retried and surface to the caller.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Recfile, error) {
	if req.Project == "" || req.Session == "" || req.ItemCode == "" {
		return nil, ErrInvalidInput
	}

	rec := &Recfile{
		RecordingFileID: req.Sequence,
		Project:         req.Project,
		Session:         req.Session,
		Date:            time.Now(),
		Recording: Recording{
			MediaItems:  []MediaItem{{AnnotationTemplate: false, Text: ""}},
			ItemCode:    req.ItemCode,
			RecDuration: req.Duration,
			RecInstructions: RecInstructions{
				RecInstructions: "",
			},
		},
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating recfile: %w", err)
	}

	s.events.Dispatch(ctx, event.Event{Type: event.CreateRecfile, Data: rec})
	return rec, nil
}

// List returns all recfiles recorded for a session within a project.
func (s *Service) List(ctx context.Context, project, sessionID string) ([]Recfile, error) {
	recs, err := s.repo.List(ctx, project, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing recfiles: %w", err)
	}
	return recs, nil
}
