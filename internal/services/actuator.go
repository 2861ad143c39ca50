package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// ActuatorKey is the settings key holding the last actuator position.
const ActuatorKey = "actuator_position"

// ActuatorStore persists the actuator position and owns the
// fallback-on-corruption policy.
type ActuatorStore struct {
	repo   ports.SettingsRepository
	logger *slog.Logger
}

// NewActuatorStore creates a store over repo.
func NewActuatorStore(repo ports.SettingsRepository, logger *slog.Logger) *ActuatorStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActuatorStore{repo: repo, logger: logger}
}

// Load returns the stored position or the error describing why it is unusable.
func (s *ActuatorStore) Load(ctx context.Context) (int, error) {
	if s.repo == nil {
		return 0, domain.ErrNotFound
	}
	v, err := s.repo.LoadInt(ctx, ActuatorKey)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 100 {
		return 0, &domain.PersistenceError{Key: ActuatorKey, Err: fmt.Errorf("value %d: %w", v, domain.ErrInvalidPosition)}
	}
	return v, nil
}

// LoadOrDefault returns the stored position, or 0 if it is missing or unusable.
func (s *ActuatorStore) LoadOrDefault(ctx context.Context) int {
	v, err := s.Load(ctx)
	if err == nil {
		return v
	}
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("no stored actuator position, using default")
	} else {
		s.logger.Warn("actuator position unreadable, using default", "err", err)
	}
	return 0
}

// Save stores the position.
func (s *ActuatorStore) Save(ctx context.Context, v int) error {
	if v < 0 || v > 100 {
		return domain.ErrInvalidPosition
	}
	if s.repo == nil {
		return nil
	}
	if err := s.repo.SaveInt(ctx, ActuatorKey, v); err != nil {
		return fmt.Errorf("failed to save actuator position: %w", err)
	}
	return nil
}
