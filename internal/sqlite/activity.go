package sqlite

import (
	"context"
	"fmt"

	"github.com/spraklab/wsrng-server/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append writes one audit entry
func (r *ActivityRepository) Append(ctx context.Context, entry *activity.Entry) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (event_type, project, session_id, item_code, details)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.EventType, entry.Project, entry.SessionID, entry.ItemCode, entry.Details)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get activity id: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent audit entries for a session, newest first;
// used by operational tooling and tests
func (r *ActivityRepository) List(ctx context.Context, sessionID string, limit int) ([]activity.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_type, project, session_id, item_code, details, created_at
		 FROM activity_log WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var entry activity.Entry
		if err := rows.Scan(&entry.ID, &entry.EventType, &entry.Project,
			&entry.SessionID, &entry.ItemCode, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}
	return entries, nil
}
