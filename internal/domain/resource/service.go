package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/spraklab/wsrng-server/internal/repository"
)

var (
	// ErrResourceNotFound indicates the resource doesn't exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates invalid resource input.
	ErrInvalidInput = errors.New("invalid resource input")
)

// Repository provides persistence for resources.
type Repository interface {
	Insert(ctx context.Context, res *Resource) error
	// Find returns the resource with the given name, preferring a
	// project-scoped match over a shared one.
	Find(ctx context.Context, project, name string) (*Resource, error)
}

// Service handles resource storage and lookup.
type Service struct {
	repo Repository
}

// NewService creates a new resource service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Import stores a resource.
func (s *Service) Import(ctx context.Context, res *Resource) error {
	if res.Name == "" || res.Data == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Insert(ctx, res); err != nil {
		return fmt.Errorf("storing resource: %w", err)
	}
	return nil
}

// Get fetches a resource visible to the given project.
func (s *Service) Get(ctx context.Context, project, name string) (*Resource, error) {
	res, err := s.repo.Find(ctx, project, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("finding resource: %w", err)
	}
	return res, nil
}
