package services

import (
	"context"
	"time"

	"github.com/xvierd/focusdial/internal/countdown"
	"github.com/xvierd/focusdial/internal/domain"
)

// homeInit enters Home. Coming back from Motor parks the encoder on the Motor
// zone; every other path parks it on the Edgelight zone.
func (c *Controller) homeInit(fromMotor bool) {
	c.state.Mode = domain.ModeHome
	c.render.Solid(domain.SubtleGlow)
	if fromMotor {
		c.seed(domain.HomePosMotor)
		return
	}
	c.seed(domain.HomePosEdgelight)
}

func (c *Controller) edgelightInit() {
	c.state.Mode = domain.ModeEdgelight
	c.render.Indicator(domain.ZoneEdgelight, domain.Blue)
	c.seed(c.state.Brightness)
}

func (c *Controller) motorInit() {
	c.state.Mode = domain.ModeMotor
	c.render.Indicator(domain.ZoneMotor, domain.Blue)
	c.seed(c.state.Actuator)
}

func (c *Controller) focusInit() {
	c.state.Mode = domain.ModeFocus
	c.render.Indicator(domain.ZoneFocus, domain.Blue)
	c.seed(0)
}

func (c *Controller) focusControlInit() {
	c.state.Mode = domain.ModeFocusControl
	c.seed(domain.ControlBack)
}

// backToFocusZone leaves FocusControl for Home with the encoder on the Focus
// zone so a single press re-opens the session controls.
func (c *Controller) backToFocusZone() {
	c.state.Mode = domain.ModeHome
	c.render.Indicators(domain.Black, domain.Black, domain.Blue)
	c.seed(domain.HomePosFocus)
}

func (c *Controller) startFocus(length time.Duration) {
	c.timer.Start(length)
	c.state.session = domain.NewFocusSession(length, c.clock.Now())
	c.logger.Info("focus session started", "id", c.state.session.ID, "length", length)

	c.state.Mode = domain.ModeHome
	c.render.Solid(domain.SubtleGlow)
	c.render.Indicator(domain.ZoneFocus, domain.Blue)
	c.seed(domain.HomePosFocus)
}

func (c *Controller) togglePause() {
	if c.timer.Paused() {
		if !c.timer.Resume() {
			return
		}
		c.logger.Info("focus session resumed", "remaining", c.timer.Remaining())
		c.render.Resumed(c.timer.Progress())
		return
	}

	if !c.timer.Pause() {
		return
	}
	c.logger.Info("focus session paused", "remaining", c.timer.Remaining())
	c.render.Paused()
}

func (c *Controller) stopFocus(ctx context.Context) {
	c.timer.Stop()
	c.logger.Info("focus session stopped", "remaining", c.timer.Remaining())

	c.render.Stopped()
	c.board.PlayTone(toneStop, toneStopFor)
	c.finishSession(ctx, domain.SessionOutcomeStopped)
	c.homeInit(false)
}

// tickCountdown advances the session. Progress is drawn only in Home.
func (c *Controller) tickCountdown(ctx context.Context) {
	ev := c.timer.Tick()
	switch ev.Kind {
	case countdown.EventCompleted:
		c.completeFocus(ctx)
	case countdown.EventProgress:
		if c.state.Mode == domain.ModeHome {
			c.render.FractionalFill(ev.Progress)
		}
	}
}

func (c *Controller) completeFocus(ctx context.Context) {
	c.logger.Info("focus session completed")

	c.render.Completed()
	c.board.PlayTone(toneComplete, toneCompleteFor)

	if c.state.Mode == domain.ModeMotor {
		c.saveActuator(ctx)
	}
	session := c.finishSession(ctx, domain.SessionOutcomeCompleted)
	if session != nil && c.notifier != nil {
		if err := c.notifier.NotifyFocusComplete(session); err != nil {
			c.logger.Warn("completion notification failed", "err", err)
		}
	}
	c.homeInit(false)
}

// finishSession stamps and journals the running session.
func (c *Controller) finishSession(ctx context.Context, outcome domain.SessionOutcome) *domain.FocusSession {
	session := c.state.session
	c.state.session = nil
	if session == nil {
		return nil
	}

	session.Finish(outcome, c.clock.Now(), c.timer.PausedTotal())
	if c.sessions == nil {
		return session
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		c.logger.Error("failed to journal focus session", "id", session.ID, "err", err)
	}
	return session
}
