package render

import (
	"time"

	"github.com/xvierd/focusdial/internal/domain"
)

// Frame timings for the feedback animations.
const (
	ConfirmHold  = 300 * time.Millisecond
	PauseHold    = 200 * time.Millisecond
	ResumeHold   = 200 * time.Millisecond
	StopHold     = 500 * time.Millisecond
	CompleteHold = 300 * time.Millisecond
)

// Confirm flashes orange once to acknowledge a focus anchor.
func (r *Renderer) Confirm() {
	r.Blink(domain.Orange, domain.Black, 1, ConfirmHold)
}

// Paused flashes orange three times, then leaves the ring solid orange.
func (r *Renderer) Paused() {
	r.Blink(domain.Orange, domain.Black, 3, PauseHold)
	r.Solid(domain.Orange)
}

// Resumed alternates green with the session progress twice.
func (r *Renderer) Resumed(progress float64) {
	for i := 0; i < 2; i++ {
		r.Solid(domain.Green)
		r.Hold(ResumeHold)
		r.FractionalFill(progress)
		r.Hold(ResumeHold)
	}
}

// Stopped clears the ring, shows red, and clears it again.
func (r *Renderer) Stopped() {
	r.Solid(domain.Black)
	r.Solid(domain.Red)
	r.Hold(StopHold)
	r.Solid(domain.Black)
}

// Completed paints the ring green, then flashes green three times.
func (r *Renderer) Completed() {
	r.Solid(domain.Green)
	r.Blink(domain.Green, domain.Black, 3, CompleteHold)
}
