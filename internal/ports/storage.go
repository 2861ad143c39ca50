package ports

import (
	"context"

	"github.com/xvierd/focusdial/internal/domain"
)

// SettingsRepository is a small typed key-value store.
// This is a driven port (implemented by adapters).
type SettingsRepository interface {
	// LoadInt returns the integer stored under key, domain.ErrNotFound if
	// absent, or a *domain.PersistenceError if the stored value is unusable.
	LoadInt(ctx context.Context, key string) (int, error)

	// SaveInt overwrites the value stored under key.
	SaveInt(ctx context.Context, key string, v int) error
}

// SessionRepository journals finished focus sessions.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a finished session.
	Save(ctx context.Context, session *domain.FocusSession) error

	// FindRecent returns up to limit sessions, newest first.
	FindRecent(ctx context.Context, limit int) ([]*domain.FocusSession, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Settings provides access to persisted scalars.
	Settings() SettingsRepository

	// Sessions provides access to the session journal.
	Sessions() SessionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}

// Notifier announces finished sessions outside the gadget.
type Notifier interface {
	NotifyFocusComplete(session *domain.FocusSession) error
}
