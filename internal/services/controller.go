package services

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"time"

	"github.com/xvierd/focusdial/internal/countdown"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
	"github.com/xvierd/focusdial/internal/render"
	"github.com/zoobzio/clockz"
)

// Feedback tones.
const (
	toneConfirm  = 440.0
	toneStop     = 330.0
	toneComplete = 523.0

	toneConfirmFor  = 500 * time.Millisecond
	toneStopFor     = 300 * time.Millisecond
	toneCompleteFor = time.Second
)

// AppState is the controller's mutable state. It is owned by the goroutine
// running the poll loop.
type AppState struct {
	Mode       domain.Mode
	Encoder    domain.EncoderState
	Brightness int
	Actuator   int

	lastActivity time.Time
	lastLevel    ports.ButtonLevel
	lastPress    time.Time
	session      *domain.FocusSession
}

// Status is a copy of the controller state for display.
type Status struct {
	Mode       domain.Mode
	Mapped     int
	Brightness int
	Actuator   int
	Active     bool
	Paused     bool
	Remaining  time.Duration
}

// Dependencies are the collaborators a Controller drives.
type Dependencies struct {
	Input    ports.Input
	Board    ports.Board
	Settings ports.SettingsRepository
	Sessions ports.SessionRepository
	Notifier ports.Notifier

	// Clock defaults to clockz.RealClock.
	Clock clockz.Clock
	// Sleep blocks between animation frames. Defaults to waiting on Clock.
	Sleep render.Sleeper
	// OnStatus, if set, receives a copy of the state after each change.
	OnStatus func(Status)
}

// Controller is the five-mode state machine.
type Controller struct {
	input    ports.Input
	board    ports.Board
	render   *render.Renderer
	timer    *countdown.Timer
	actuator *ActuatorStore
	sessions ports.SessionRepository
	notifier ports.Notifier
	clock    clockz.Clock
	onStatus func(Status)

	cfg    domain.Settings
	logger *slog.Logger

	state      AppState
	lastStatus Status
}

// NewController wires a controller. Call Start before polling.
func NewController(deps Dependencies, cfg domain.Settings, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockz.RealClock
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = render.ClockSleeper(clock)
	}

	return &Controller{
		input:    deps.Input,
		board:    deps.Board,
		render:   render.New(deps.Board, deps.Board, sleep),
		timer:    countdown.New(clock),
		actuator: NewActuatorStore(deps.Settings, logger),
		sessions: deps.Sessions,
		notifier: deps.Notifier,
		clock:    clock,
		onStatus: deps.OnStatus,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start loads the persisted actuator position and enters Home.
func (c *Controller) Start(ctx context.Context) {
	c.state.Actuator = c.actuator.LoadOrDefault(ctx)
	c.state.lastLevel = c.input.Button()
	c.logger.Info("controller started", "actuator", c.state.Actuator)
	c.homeInit(false)
	c.publish()
}

// Run polls until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.Start(ctx)

	interval := c.cfg.PollInterval
	if interval <= 0 {
		interval = domain.DefaultSettings().PollInterval
	}
	timer := c.clock.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-timer.C():
			c.Poll(ctx)
			timer.Reset(interval)
		}
	}
}

// Poll runs one loop iteration: advance the countdown, check the motor idle
// timeout, fold in encoder movement, then react to a button edge.
func (c *Controller) Poll(ctx context.Context) {
	defer c.publish()

	if c.timer.Active() {
		c.tickCountdown(ctx)
	}

	if c.state.Mode == domain.ModeMotor && c.clock.Since(c.state.lastActivity) >= c.cfg.MotorIdleTimeout {
		c.logger.Info("motor idle timeout, returning home", "actuator", c.state.Actuator)
		c.saveActuator(ctx)
		c.homeInit(true)
		return
	}

	if c.state.Encoder.Observe(c.input.Position(), c.state.Mode) {
		c.applyMapped()
	}

	level := c.input.Button()
	edge := level == ports.ButtonPressed && c.state.lastLevel == ports.ButtonReleased
	c.state.lastLevel = level
	if !edge {
		return
	}
	if c.clock.Since(c.state.lastPress) < c.cfg.Debounce {
		c.logger.Debug("button bounce ignored")
		return
	}
	c.state.lastPress = c.clock.Now()
	c.onButton(ctx)
}

// State returns a copy of the application state.
func (c *Controller) State() AppState {
	return c.state
}

// Status returns the display view of the current state.
func (c *Controller) Status() Status {
	st := c.timer.State()
	return Status{
		Mode:       c.state.Mode,
		Mapped:     c.state.Encoder.Mapped,
		Brightness: c.state.Brightness,
		Actuator:   c.state.Actuator,
		Active:     st.Active,
		Paused:     st.Paused,
		Remaining:  st.Remaining.Truncate(time.Second),
	}
}

// Countdown exposes the session timer state.
func (c *Controller) Countdown() countdown.State {
	return c.timer.State()
}

func (c *Controller) publish() {
	if c.onStatus == nil {
		return
	}
	s := c.Status()
	if s == c.lastStatus {
		return
	}
	c.lastStatus = s
	c.onStatus(s)
}

// seed places the encoder on value for the current mode and refreshes the
// mode's outputs as if the encoder had moved there.
func (c *Controller) seed(value int) {
	c.state.Encoder.Seed(c.input.Position(), value, c.state.Mode)
	c.applyMapped()
}

// applyMapped updates the outputs of the current mode for a new mapped value.
func (c *Controller) applyMapped() {
	mapped := c.state.Encoder.Mapped

	switch c.state.Mode {
	case domain.ModeHome:
		c.previewZone(domain.HomeZone(mapped))

	case domain.ModeEdgelight:
		c.state.Brightness = mapped
		c.render.FractionalFill(float64(mapped) / 100)
		c.board.SetBrightness(mapped)

	case domain.ModeMotor:
		c.state.Actuator = mapped
		c.board.SetPosition(mapped)
		c.render.FractionalFill(float64(mapped) / 100)
		c.state.lastActivity = c.clock.Now()

	case domain.ModeFocus:
		if domain.IsFocusAnchor(mapped) {
			c.render.Confirm()
			c.board.PlayTone(toneConfirm, toneConfirmFor)
		}
		c.render.Fill(mapped)

	case domain.ModeFocusControl:
		switch mapped {
		case domain.ControlBack:
			c.render.Solid(domain.SubtleGlowSelected)
		case domain.ControlPause:
			if c.timer.Paused() {
				c.render.Solid(domain.Purple)
			} else {
				c.render.Solid(domain.Silver)
			}
		default:
			c.render.Solid(domain.Red)
		}
	}

	c.logger.Debug("mapped", "mode", c.state.Mode, "mapped", mapped, "brightness", c.state.Brightness)
}

// previewZone colours the lamps for the Home zone under the encoder.
func (c *Controller) previewZone(zone domain.Zone) {
	switch zone {
	case domain.ZoneFocus:
		focus := domain.Green
		if c.timer.Active() {
			focus = domain.Blue
		}
		c.render.Indicators(domain.Black, domain.Black, focus)
	case domain.ZoneMotor:
		c.render.Indicators(domain.Black, domain.Green, domain.Black)
	default:
		c.render.Indicators(c.edgelightLamp(), domain.Black, domain.Black)
	}
}

func (c *Controller) edgelightLamp() color.RGBA {
	if c.state.Brightness == 0 {
		return domain.Green
	}
	return domain.Blue
}

// onButton performs the single transition or in-mode action for a press.
func (c *Controller) onButton(ctx context.Context) {
	mapped := c.state.Encoder.Mapped
	c.logger.Info("button pressed", "mode", c.state.Mode, "mapped", mapped)

	switch c.state.Mode {
	case domain.ModeHome:
		switch domain.HomeZone(mapped) {
		case domain.ZoneFocus:
			if c.timer.Active() {
				c.focusControlInit()
			} else {
				c.focusInit()
			}
		case domain.ZoneMotor:
			c.motorInit()
		default:
			c.edgelightInit()
		}

	case domain.ModeEdgelight:
		c.homeInit(false)

	case domain.ModeMotor:
		c.saveActuator(ctx)
		c.homeInit(true)

	case domain.ModeFocus:
		length, ok := c.cfg.FocusLength(mapped)
		if !ok {
			c.logger.Debug("focus press ignored, no length selected", "mapped", mapped)
			return
		}
		c.startFocus(length)

	case domain.ModeFocusControl:
		switch mapped {
		case domain.ControlBack:
			c.backToFocusZone()
		case domain.ControlPause:
			c.togglePause()
		default:
			c.stopFocus(ctx)
		}
	}
}

func (c *Controller) saveActuator(ctx context.Context) {
	if err := c.actuator.Save(ctx, c.state.Actuator); err != nil {
		c.logger.Error("failed to persist actuator position", "err", err)
	}
}
