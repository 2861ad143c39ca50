// Package sound plays feedback tones on the host speaker.
package sound

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/xvierd/focusdial/internal/ports"
	"github.com/zoobzio/clockz"
)

// Emitter implements ports.ToneEmitter with beeep. PlayTone blocks for the
// tone's duration whether or not the host could sound it, so feedback timing
// matches the device.
type Emitter struct {
	enabled bool
	clock   clockz.Clock
	logger  *slog.Logger
	beep    func(freq float64, durationMs int) error
	wait    func(d time.Duration)
	failed  bool
}

// Ensure Emitter implements ports.ToneEmitter.
var _ ports.ToneEmitter = (*Emitter)(nil)

// New creates an emitter. A nil clock uses the real clock.
func New(cfg config.SoundConfig, clock clockz.Clock, logger *slog.Logger) *Emitter {
	if clock == nil {
		clock = clockz.RealClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		enabled: cfg.Enabled,
		clock:   clock,
		logger:  logger,
		beep:    beeep.Beep,
		wait: func(d time.Duration) {
			<-clock.NewTimer(d).C()
		},
	}
}

// PlayTone sounds freq for d.
func (e *Emitter) PlayTone(freq float64, d time.Duration) {
	if d <= 0 {
		return
	}
	start := e.clock.Now()

	if e.enabled {
		if err := e.beep(freq, int(d.Milliseconds())); err != nil {
			// Hosts without a speaker fail every time; report it once.
			if !e.failed {
				e.logger.Warn("tone playback unavailable", "err", err)
			}
			e.failed = true
		}
	}

	if rest := d - e.clock.Since(start); rest > 0 {
		e.wait(rest)
	}
}
