package sound

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusdial/internal/config"
	"github.com/zoobzio/clockz"
)

type beep struct {
	freq float64
	ms   int
}

type rig struct {
	emitter *Emitter
	clock   *clockz.FakeClock
	beeps   []beep
	waits   []time.Duration
}

// newRig builds an emitter whose beep takes took of fake time.
func newRig(enabled bool, took time.Duration, err error) *rig {
	r := &rig{clock: clockz.NewFakeClock()}
	r.emitter = New(config.SoundConfig{Enabled: enabled}, r.clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.emitter.beep = func(freq float64, ms int) error {
		r.beeps = append(r.beeps, beep{freq, ms})
		r.clock.Advance(took)
		return err
	}
	r.emitter.wait = func(d time.Duration) {
		r.waits = append(r.waits, d)
		r.clock.Advance(d)
	}
	return r
}

func TestEmitter_WaitsForDuration(t *testing.T) {
	r := newRig(true, 0, nil)
	r.emitter.PlayTone(440, 500*time.Millisecond)

	require.Len(t, r.beeps, 1)
	assert.Equal(t, beep{440, 500}, r.beeps[0])
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, r.waits)
}

func TestEmitter_WaitsOnlyForRemainder(t *testing.T) {
	r := newRig(true, 200*time.Millisecond, nil)
	r.emitter.PlayTone(330, 300*time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, r.waits)

	r = newRig(true, time.Second, nil)
	r.emitter.PlayTone(330, 300*time.Millisecond)
	assert.Empty(t, r.waits, "blocking beep already covered the tone")
}

func TestEmitter_Disabled(t *testing.T) {
	r := newRig(false, 0, nil)
	r.emitter.PlayTone(330, 300*time.Millisecond)

	assert.Empty(t, r.beeps)
	assert.Equal(t, []time.Duration{300 * time.Millisecond}, r.waits)
}

func TestEmitter_FailureStillWaits(t *testing.T) {
	r := newRig(true, 0, errors.New("no speaker"))
	r.emitter.PlayTone(523, time.Second)
	r.emitter.PlayTone(523, time.Second)

	assert.Len(t, r.beeps, 2)
	assert.Len(t, r.waits, 2)
	assert.True(t, r.emitter.failed)
}

func TestEmitter_ZeroDuration(t *testing.T) {
	r := newRig(true, 0, nil)
	r.emitter.PlayTone(440, 0)
	assert.Empty(t, r.beeps)
	assert.Empty(t, r.waits)
}
