package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a finished session.
func (r *sessionRepository) Save(ctx context.Context, session *domain.FocusSession) error {
	query := `
		INSERT INTO sessions (id, length_ms, started_at, ended_at, paused_ms, outcome)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Length.Milliseconds(),
		session.StartedAt.UTC(),
		session.EndedAt.UTC(),
		session.Paused.Milliseconds(),
		string(session.Outcome),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("session %s already journaled", session.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindRecent returns up to limit sessions, newest first. A non-positive
// limit returns every session.
func (r *sessionRepository) FindRecent(ctx context.Context, limit int) ([]*domain.FocusSession, error) {
	query := `
		SELECT id, length_ms, started_at, ended_at, paused_ms, outcome
		FROM sessions
		ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.FocusSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(rows *sql.Rows) (*domain.FocusSession, error) {
	var (
		session  domain.FocusSession
		lengthMs int64
		pausedMs int64
		outcome  string
	)
	if err := rows.Scan(&session.ID, &lengthMs, &session.StartedAt, &session.EndedAt, &pausedMs, &outcome); err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	session.Length = time.Duration(lengthMs) * time.Millisecond
	session.Paused = time.Duration(pausedMs) * time.Millisecond
	session.Outcome = domain.SessionOutcome(outcome)
	return &session, nil
}
