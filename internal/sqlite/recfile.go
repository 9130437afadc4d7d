package sqlite

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/recfile"
)

// RecfileRepository implements recfile.Repository for SQLite
type RecfileRepository struct {
	db *DB
}

// NewRecfileRepository creates a new RecfileRepository
func NewRecfileRepository(db *DB) *RecfileRepository {
	return &RecfileRepository{db: db}
}

// Insert stores a recfile document
func (r *RecfileRepository) Insert(ctx context.Context, rec *recfile.Recfile) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode recfile document: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO recfiles (project, session_id, item_code, recording_file_id, document)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Project, rec.Session, rec.Recording.ItemCode, rec.RecordingFileID, string(doc))
	if err != nil {
		return fmt.Errorf("failed to insert recfile: %w", err)
	}
	return nil
}

// List returns all recfiles for a session within a project, oldest first
func (r *RecfileRepository) List(ctx context.Context, project, sessionID string) ([]recfile.Recfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT document FROM recfiles WHERE project = ? AND session_id = ? ORDER BY id ASC`,
		project, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recfiles: %w", err)
	}
	defer rows.Close()

	var recs []recfile.Recfile
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan recfile: %w", err)
		}
		var rec recfile.Recfile
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode recfile document: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recfiles: %w", err)
	}
	return recs, nil
}
