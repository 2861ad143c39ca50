package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// settingsRepository implements ports.SettingsRepository using SQLite.
type settingsRepository struct {
	db *sql.DB
}

func newSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &settingsRepository{db: db}
}

// LoadInt reads an integer setting. Values are stored as text so a hand
// edited row surfaces as a PersistenceError rather than a scan failure.
func (r *settingsRepository) LoadInt(ctx context.Context, key string) (int, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, &domain.PersistenceError{Key: key, Err: err}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.PersistenceError{Key: key, Err: fmt.Errorf("value %q is not an integer", raw)}
	}
	return v, nil
}

// SaveInt upserts an integer setting.
func (r *settingsRepository) SaveInt(ctx context.Context, key string, v int) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, strconv.Itoa(v), time.Now().UTC()); err != nil {
		return &domain.PersistenceError{Key: key, Err: err}
	}
	return nil
}
