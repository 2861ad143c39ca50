package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/xvierd/focusdial/internal/domain"
)

type sent struct {
	title, message string
}

func newRecording(enabled bool, err error) (*Notifier, *[]sent) {
	var got []sent
	n := New(&config.NotificationConfig{Enabled: enabled})
	n.notify = func(title, message string, _ any) error {
		got = append(got, sent{title, message})
		return err
	}
	return n, &got
}

func TestNotifyFocusComplete(t *testing.T) {
	n, got := newRecording(true, nil)
	session := domain.NewFocusSession(45*time.Minute, time.Now())

	require.NoError(t, n.NotifyFocusComplete(session))
	require.Len(t, *got, 1)
	assert.Equal(t, "Focus session complete", (*got)[0].title)
	assert.Equal(t, "You finished a 45 min session.", (*got)[0].message)
}

func TestNotifyFocusComplete_Paused(t *testing.T) {
	n, got := newRecording(true, nil)
	session := domain.NewFocusSession(36*time.Second, time.Now())
	session.Paused = 90 * time.Second

	require.NoError(t, n.NotifyFocusComplete(session))
	assert.Equal(t, "You finished a 36s session (paused for 1m30s).", (*got)[0].message)
}

func TestNotify_Disabled(t *testing.T) {
	n, got := newRecording(false, nil)
	require.NoError(t, n.Notify("t", "m"))
	assert.Empty(t, *got)

	assert.False(t, New(nil).IsEnabled())
}

func TestNotify_WrapsError(t *testing.T) {
	boom := errors.New("no dbus")
	n, _ := newRecording(true, boom)
	assert.ErrorIs(t, n.Notify("t", "m"), boom)
}
