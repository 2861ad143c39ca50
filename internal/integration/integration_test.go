package integration

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/focusdial/internal/adapters/notification"
	"github.com/xvierd/focusdial/internal/adapters/sim"
	"github.com/xvierd/focusdial/internal/adapters/storage"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
	"github.com/xvierd/focusdial/internal/services"
	"github.com/zoobzio/clockz"
)

// setupTestStorage creates a temporary database for integration tests
func setupTestStorage(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cleanup := func() {
		os.Remove(dbPath)
	}

	return dbPath, cleanup
}

func openStorage(t *testing.T, dbPath string) ports.Storage {
	t.Helper()

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return store
}

// gadget is a controller on a simulated board, backed by real storage.
type gadget struct {
	ctx   context.Context
	clock *clockz.FakeClock
	board *sim.Board
	ctl   *services.Controller
	cfg   domain.Settings
}

func newGadget(store ports.Storage, cfg domain.Settings) *gadget {
	g := &gadget{
		ctx:   context.Background(),
		clock: clockz.NewFakeClock(),
		board: sim.NewBoard(domain.RingSize),
		cfg:   cfg,
	}
	g.ctl = services.NewController(services.Dependencies{
		Input:    g.board,
		Board:    g.board,
		Settings: store.Settings(),
		Sessions: store.Sessions(),
		Notifier: notification.New(&config.NotificationConfig{Enabled: false}),
		Clock:    g.clock,
		Sleep:    func(d time.Duration) { g.clock.Advance(d) },
	}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.ctl.Start(g.ctx)
	return g
}

func (g *gadget) rotate(delta int) {
	g.board.Rotate(delta)
	g.ctl.Poll(g.ctx)
}

func (g *gadget) press() {
	g.board.Press()
	g.ctl.Poll(g.ctx)
	g.ctl.Poll(g.ctx)
	g.clock.Advance(g.cfg.Debounce)
}

func (g *gadget) advance(d time.Duration) {
	g.clock.Advance(d)
	g.ctl.Poll(g.ctx)
}

// TestActuatorSurvivesRestart tests that the motor position is restored
// from the database after the controller restarts.
func TestActuatorSurvivesRestart(t *testing.T) {
	dbPath, cleanup := setupTestStorage(t)
	defer cleanup()

	store := openStorage(t, dbPath)
	g := newGadget(store, domain.DefaultSettings())

	g.rotate(domain.HomePosMotor)
	g.press()
	if g.ctl.State().Mode != domain.ModeMotor {
		t.Fatalf("expected motor mode, got %v", g.ctl.State().Mode)
	}
	g.rotate(7)
	g.press()
	if g.ctl.State().Mode != domain.ModeHome {
		t.Fatalf("expected home mode after press, got %v", g.ctl.State().Mode)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close storage: %v", err)
	}

	store = openStorage(t, dbPath)
	defer store.Close()

	got, err := services.NewActuatorStore(store.Settings(), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load actuator: %v", err)
	}
	if got != 7 {
		t.Errorf("expected stored actuator 7, got %d", got)
	}

	g = newGadget(store, domain.DefaultSettings())
	if g.board.Snapshot().Actuator != 0 {
		t.Errorf("actuator should not move before motor mode, got %d", g.board.Snapshot().Actuator)
	}
	g.rotate(domain.HomePosMotor)
	g.press()
	if g.board.Snapshot().Actuator != 7 {
		t.Errorf("expected actuator restored to 7, got %d", g.board.Snapshot().Actuator)
	}
}

// TestMotorIdleTimeoutPersists tests that leaving motor mode by timeout
// writes the position like a button press does.
func TestMotorIdleTimeoutPersists(t *testing.T) {
	dbPath, cleanup := setupTestStorage(t)
	defer cleanup()

	store := openStorage(t, dbPath)
	defer store.Close()

	g := newGadget(store, domain.DefaultSettings())
	g.rotate(domain.HomePosMotor)
	g.press()
	g.rotate(30)
	g.advance(15 * time.Second)

	if g.ctl.State().Mode != domain.ModeHome {
		t.Fatalf("expected home mode after idle timeout, got %v", g.ctl.State().Mode)
	}
	v, err := store.Settings().LoadInt(context.Background(), services.ActuatorKey)
	if err != nil {
		t.Fatalf("failed to load actuator: %v", err)
	}
	if v != 30 {
		t.Errorf("expected stored actuator 30, got %d", v)
	}
}

// TestFocusSessionJournal tests that completed and stopped sessions end up
// in the session journal.
func TestFocusSessionJournal(t *testing.T) {
	dbPath, cleanup := setupTestStorage(t)
	defer cleanup()

	store := openStorage(t, dbPath)
	defer store.Close()

	cfg := domain.DefaultSettings()
	cfg.FocusShort = 2 * time.Second
	g := newGadget(store, cfg)

	startFirstAnchor := func() {
		g.rotate(domain.HomePosFocus)
		g.press()
		g.rotate(domain.FocusPosShort - g.ctl.State().Encoder.Mapped)
		g.press()
	}

	t.Run("completed session", func(t *testing.T) {
		startFirstAnchor()
		if !g.ctl.Countdown().Active {
			t.Fatal("expected an active countdown")
		}

		g.advance(time.Second)
		g.advance(time.Second)
		if g.ctl.Countdown().Active {
			t.Fatal("expected the countdown to have completed")
		}
	})

	t.Run("stopped session", func(t *testing.T) {
		g.advance(time.Minute)
		startFirstAnchor()
		g.advance(500 * time.Millisecond)

		g.press()
		if g.ctl.State().Mode != domain.ModeFocusControl {
			t.Fatalf("expected focus control mode, got %v", g.ctl.State().Mode)
		}
		g.rotate(domain.ControlStop)
		g.press()
		if g.ctl.Countdown().Active {
			t.Fatal("expected the countdown to be stopped")
		}
	})

	sessions, err := store.Sessions().FindRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Outcome != domain.SessionOutcomeStopped {
		t.Errorf("expected newest session stopped, got %v", sessions[0].Outcome)
	}
	if sessions[1].Outcome != domain.SessionOutcomeCompleted {
		t.Errorf("expected oldest session completed, got %v", sessions[1].Outcome)
	}
	if sessions[1].Length != 2*time.Second {
		t.Errorf("expected 2s session, got %v", sessions[1].Length)
	}
	if sessions[1].Focused() != 2*time.Second {
		t.Errorf("expected 2s focused, got %v", sessions[1].Focused())
	}
}
