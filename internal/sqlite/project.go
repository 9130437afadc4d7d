package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Find retrieves a project by name
func (r *ProjectRepository) Find(ctx context.Context, name string) (*project.Project, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM projects WHERE name = ?`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var proj project.Project
	if err := json.Unmarshal([]byte(doc), &proj); err != nil {
		return nil, fmt.Errorf("failed to decode project document: %w", err)
	}
	return &proj, nil
}

// Insert stores a new project document
func (r *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	doc, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to encode project document: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (name, document) VALUES (?, ?)`,
		proj.Name, string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
