package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusdial/internal/adapters/sim"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/zoobzio/clockz"
)

type memSettings struct {
	mu     sync.Mutex
	values map[string]int
	err    error
	saves  int
}

func newMemSettings() *memSettings {
	return &memSettings{values: map[string]int{}}
}

func (m *memSettings) LoadInt(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return v, nil
}

func (m *memSettings) SaveInt(_ context.Context, key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = v
	m.saves++
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions []*domain.FocusSession
}

func (m *memSessions) Save(_ context.Context, s *domain.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memSessions) FindRecent(_ context.Context, limit int) ([]*domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]*domain.FocusSession(nil), m.sessions...)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type recordingNotifier struct {
	sessions []*domain.FocusSession
	err      error
}

func (n *recordingNotifier) NotifyFocusComplete(s *domain.FocusSession) error {
	n.sessions = append(n.sessions, s)
	return n.err
}

var errDisk = errors.New("disk unavailable")

// rig is a controller over a simulated board with a fake clock. Animation
// holds advance the fake clock instead of sleeping.
type rig struct {
	t        *testing.T
	ctx      context.Context
	clock    *clockz.FakeClock
	board    *sim.Board
	settings *memSettings
	sessions *memSessions
	notifier *recordingNotifier
	ctl      *Controller
}

func newRig(t *testing.T, cfg domain.Settings, setup ...func(*rig)) *rig {
	t.Helper()
	r := &rig{
		t:        t,
		ctx:      context.Background(),
		clock:    clockz.NewFakeClock(),
		board:    sim.NewBoard(domain.RingSize),
		settings: newMemSettings(),
		sessions: &memSessions{},
		notifier: &recordingNotifier{},
	}
	for _, fn := range setup {
		fn(r)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.ctl = NewController(Dependencies{
		Input:    r.board,
		Board:    r.board,
		Settings: r.settings,
		Sessions: r.sessions,
		Notifier: r.notifier,
		Clock:    r.clock,
		Sleep:    func(d time.Duration) { r.clock.Advance(d) },
	}, cfg, logger)
	r.ctl.Start(r.ctx)
	return r
}

// press delivers one button edge and lets the debounce window lapse.
func (r *rig) press() {
	r.t.Helper()
	r.board.Press()
	r.ctl.Poll(r.ctx)
	r.ctl.Poll(r.ctx)
	r.clock.Advance(r.ctl.cfg.Debounce)
}

func (r *rig) rotate(delta int) {
	r.board.Rotate(delta)
	r.ctl.Poll(r.ctx)
}

func (r *rig) advance(d time.Duration) {
	r.clock.Advance(d)
	r.ctl.Poll(r.ctx)
}

func (r *rig) requireMode(want domain.Mode) {
	r.t.Helper()
	require.Equal(r.t, want, r.ctl.State().Mode)
}
