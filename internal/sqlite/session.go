package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// SessionRepository implements session.Repository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Find retrieves a session document by id
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (*session.Session, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM sessions WHERE session_id = ?`, sessionID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(doc), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session document: %w", err)
	}
	return &sess, nil
}

// Insert stores a new session document
func (r *SessionRepository) Insert(ctx context.Context, sess *session.Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session document: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, project, status, document) VALUES (?, ?, ?, ?)`,
		sess.SessionID, sess.Project, string(sess.Status), string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Replace overwrites the full session document, failing with ErrNotFound
// when no session matches the id
func (r *SessionRepository) Replace(ctx context.Context, sessionID string, sess *session.Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session document: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET project = ?, status = ?, document = ?, updated_at = ? WHERE session_id = ?`,
		sess.Project, string(sess.Status), string(doc), time.Now(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
