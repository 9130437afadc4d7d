package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/spraklab/wsrng-server/internal/repository"
)

// Repository provides read access to stored scripts.
type Repository interface {
	Find(ctx context.Context, scriptID string) (*Script, error)
}

// Service resolves scripts for display.
type Service struct {
	repo Repository
}

// NewService creates a new script service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches a script by id.
func (s *Service) Get(ctx context.Context, scriptID string) (*Script, error) {
	scr, err := s.repo.Find(ctx, scriptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScriptNotFound
		}
		return nil, fmt.Errorf("finding script: %w", err)
	}
	return scr, nil
}
