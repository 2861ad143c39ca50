// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string, icon any) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, notify: beeep.Notify}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	if err := n.notify(title, message, ""); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// NotifyFocusComplete displays a notification when a focus session completes.
func (n *Notifier) NotifyFocusComplete(session *domain.FocusSession) error {
	title := "Focus session complete"
	message := fmt.Sprintf("You finished a %s session.", formatLength(session.Length))
	if session.Paused > 0 {
		message = fmt.Sprintf("You finished a %s session (paused for %s).", formatLength(session.Length), session.Paused.Round(time.Second))
	}
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func formatLength(d time.Duration) string {
	m := d.Minutes()
	if m < 1 {
		return fmt.Sprintf("%.0fs", m*60)
	}
	return fmt.Sprintf("%.0f min", m)
}
