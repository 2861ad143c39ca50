// Package render turns progress fractions and discrete indices into ring
// and lamp commands.
package render

import (
	"image/color"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/mathx"
	"github.com/xvierd/focusdial/internal/ports"
	"github.com/zoobzio/clockz"
)

// Sleeper blocks the caller for d. Animations use it between frames.
type Sleeper func(d time.Duration)

// ClockSleeper returns a Sleeper that waits on clock.
func ClockSleeper(clock clockz.Clock) Sleeper {
	return func(d time.Duration) {
		if d <= 0 {
			return
		}
		<-clock.NewTimer(d).C()
	}
}

// Renderer paints the ring and the zone lamps.
type Renderer struct {
	ring  ports.Ring
	lamps ports.ZoneLamps
	sleep Sleeper

	idle     color.RGBA
	selected color.RGBA
}

// New creates a renderer using the stock idle and selected glow colours.
func New(ring ports.Ring, lamps ports.ZoneLamps, sleep Sleeper) *Renderer {
	return &Renderer{
		ring:     ring,
		lamps:    lamps,
		sleep:    sleep,
		idle:     domain.SubtleGlow,
		selected: domain.SubtleGlowSelected,
	}
}

// Solid paints every ring pixel c and flushes.
func (r *Renderer) Solid(c color.RGBA) {
	for i := 0; i < r.ring.Len(); i++ {
		r.ring.SetPixel(i, c)
	}
	r.ring.Flush()
}

// Fill lights the first count pixels in the selected glow, the rest idle.
func (r *Renderer) Fill(count int) {
	for i := 0; i < r.ring.Len(); i++ {
		if i < count {
			r.ring.SetPixel(i, r.selected)
		} else {
			r.ring.SetPixel(i, r.idle)
		}
	}
	r.ring.Flush()
}

// FractionalFill lights floor(progress*N) pixels in the selected glow. The
// pixel at that index is blended from idle toward selected by the
// fractional remainder; pixels past it stay idle.
func (r *Renderer) FractionalFill(progress float64) {
	n := r.ring.Len()
	lit := mathx.Clamp(progress, 0, 1) * float64(n)
	full := int(lit)
	frac := lit - float64(full)

	for i := 0; i < n; i++ {
		switch {
		case i < full:
			r.ring.SetPixel(i, r.selected)
		case i == full:
			r.ring.SetPixel(i, domain.Lerp(r.idle, r.selected, frac))
		default:
			r.ring.SetPixel(i, r.idle)
		}
	}
	r.ring.Flush()
}

// Indicator sets one zone lamp. The ring is untouched.
func (r *Renderer) Indicator(zone domain.Zone, c color.RGBA) {
	r.lamps.SetZoneLamp(zone, c)
}

// Indicators sets all three zone lamps at once.
func (r *Renderer) Indicators(edgelight, motor, focus color.RGBA) {
	r.lamps.SetZoneLamp(domain.ZoneEdgelight, edgelight)
	r.lamps.SetZoneLamp(domain.ZoneMotor, motor)
	r.lamps.SetZoneLamp(domain.ZoneFocus, focus)
}

// Hold blocks for d with the current frame on display.
func (r *Renderer) Hold(d time.Duration) {
	if r.sleep != nil {
		r.sleep(d)
	}
}

// Blink alternates between on and off, holding each for hold, times times.
func (r *Renderer) Blink(on, off color.RGBA, times int, hold time.Duration) {
	for i := 0; i < times; i++ {
		r.Solid(on)
		r.Hold(hold)
		r.Solid(off)
		r.Hold(hold)
	}
}
