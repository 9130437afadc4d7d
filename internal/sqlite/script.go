package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// ScriptRepository implements script.Repository for SQLite
type ScriptRepository struct {
	db *DB
}

// NewScriptRepository creates a new ScriptRepository
func NewScriptRepository(db *DB) *ScriptRepository {
	return &ScriptRepository{db: db}
}

// Find retrieves a script document by id
func (r *ScriptRepository) Find(ctx context.Context, scriptID string) (*script.Script, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM scripts WHERE script_id = ?`, scriptID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get script: %w", err)
	}

	scr := script.Script{ID: scriptID}
	if err := json.Unmarshal([]byte(doc), &scr.Document); err != nil {
		return nil, fmt.Errorf("failed to decode script document: %w", err)
	}
	return &scr, nil
}

// Insert stores a script document; used by seeding tools and tests.
func (r *ScriptRepository) Insert(ctx context.Context, scr *script.Script) error {
	doc, err := json.Marshal(scr.Document)
	if err != nil {
		return fmt.Errorf("failed to encode script document: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO scripts (script_id, document) VALUES (?, ?)`,
		scr.ID, string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert script: %w", err)
	}
	return nil
}
