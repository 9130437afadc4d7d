package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spraklab/wsrng-server/internal/event"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	events Dispatcher
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, events Dispatcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, events: events, logger: logger}
}

// Ensure returns the project with the given name, creating it with default
// fields on first access. Creation fires a createProject event.
func (s *Service) Ensure(ctx context.Context, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	proj, err := s.repo.Find(ctx, name)
	if err == nil {
		return proj, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("finding project: %w", err)
	}

	s.logger.Info("creating speech recorder project", "project", name)
	proj = NewWithDefaults(name)
	if err := s.repo.Insert(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.events.Dispatch(ctx, event.Event{Type: event.CreateProject, Data: proj})
	return proj, nil
}
