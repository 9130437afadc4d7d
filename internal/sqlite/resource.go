package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// ResourceRepository implements resource.Repository for SQLite
type ResourceRepository struct {
	db *DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Insert stores a resource
func (r *ResourceRepository) Insert(ctx context.Context, res *resource.Resource) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (project, script_id, name, mime_type, data) VALUES (?, ?, ?, ?, ?)`,
		res.Project, res.ScriptID, res.Name, res.MimeType, res.Data)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert resource: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get resource id: %w", err)
	}
	res.ID = id
	return nil
}

// Find returns the named resource, preferring a project-scoped row over a
// shared one (empty project)
func (r *ResourceRepository) Find(ctx context.Context, project, name string) (*resource.Resource, error) {
	var res resource.Resource
	var scriptID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project, script_id, name, mime_type, data
		 FROM resources
		 WHERE name = ? AND project IN (?, '')
		 ORDER BY project DESC
		 LIMIT 1`,
		name, project).Scan(&res.ID, &res.Project, &scriptID, &res.Name, &res.MimeType, &res.Data)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if scriptID.Valid {
		res.ScriptID = scriptID.Int64
	}
	return &res, nil
}
