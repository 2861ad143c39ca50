// Package sim provides an in-process gadget board: an encoder and button
// driven by method calls, and outputs captured as snapshots.
//
// The controller goroutine owns the board's outputs; other goroutines only
// queue input (Rotate, Press) and read copies (Snapshot).
package sim

import (
	"image/color"
	"sync"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// Tone is one played tone.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// Snapshot is a copy of everything visible on the board.
type Snapshot struct {
	Ring     []color.RGBA
	Lamps    [3]color.RGBA
	Strip    int
	Actuator int
	Tone     *Tone
	Flushes  int
}

// Lamp returns the colour of a zone lamp.
func (s Snapshot) Lamp(z domain.Zone) color.RGBA {
	return s.Lamps[z]
}

// Board implements ports.Input and ports.Board in memory.
type Board struct {
	mu sync.Mutex

	position int
	queued   int
	held     bool
	level    *ports.ButtonLevel

	buffer []color.RGBA
	shown  []color.RGBA
	lamps  [3]color.RGBA
	strip  int
	motor  int
	tone   *Tone
	tones  []Tone
	frames [][]color.RGBA

	flushes  int
	emitter  ports.ToneEmitter
	listener func(Snapshot)
	record   bool
}

// Ensure Board implements the hardware ports.
var (
	_ ports.Input = (*Board)(nil)
	_ ports.Board = (*Board)(nil)
)

// Option configures a Board.
type Option func(*Board)

// WithToneEmitter forwards played tones to e after recording them.
func WithToneEmitter(e ports.ToneEmitter) Option {
	return func(b *Board) { b.emitter = e }
}

// WithListener calls fn with a snapshot after every visible change.
func WithListener(fn func(Snapshot)) Option {
	return func(b *Board) { b.listener = fn }
}

// WithFrameRecording keeps every flushed ring frame for inspection.
func WithFrameRecording() Option {
	return func(b *Board) { b.record = true }
}

// NewBoard creates a board with a ring of size pixels, all dark.
func NewBoard(size int, opts ...Option) *Board {
	b := &Board{
		buffer: make([]color.RGBA, size),
		shown:  make([]color.RGBA, size),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rotate moves the encoder by delta detents.
func (b *Board) Rotate(delta int) {
	b.mu.Lock()
	b.position += delta
	b.mu.Unlock()
}

// Press queues one press-and-release of the button. Each queued press is
// reported as a single pressed sample followed by a released sample.
func (b *Board) Press() {
	b.mu.Lock()
	b.queued++
	b.mu.Unlock()
}

// Hold forces the button level until Release is called.
func (b *Board) Hold() {
	b.mu.Lock()
	lvl := ports.ButtonPressed
	b.level = &lvl
	b.mu.Unlock()
}

// Release ends a Hold.
func (b *Board) Release() {
	b.mu.Lock()
	b.level = nil
	b.mu.Unlock()
}

// Position implements ports.Input.
func (b *Board) Position() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

// Button implements ports.Input.
func (b *Board) Button() ports.ButtonLevel {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.level != nil {
		return *b.level
	}
	if b.held {
		b.held = false
		return ports.ButtonReleased
	}
	if b.queued > 0 {
		b.queued--
		b.held = true
		return ports.ButtonPressed
	}
	return ports.ButtonReleased
}

// SetZoneLamp implements ports.ZoneLamps.
func (b *Board) SetZoneLamp(zone domain.Zone, c color.RGBA) {
	b.mu.Lock()
	b.lamps[zone] = c
	b.mu.Unlock()
	b.notify()
}

// Len implements ports.Ring.
func (b *Board) Len() int {
	return len(b.buffer)
}

// SetPixel implements ports.Ring.
func (b *Board) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(b.buffer) {
		return
	}
	b.mu.Lock()
	b.buffer[i] = c
	b.mu.Unlock()
}

// Flush implements ports.Ring.
func (b *Board) Flush() {
	b.mu.Lock()
	copy(b.shown, b.buffer)
	b.flushes++
	if b.record {
		b.frames = append(b.frames, append([]color.RGBA(nil), b.shown...))
	}
	b.mu.Unlock()
	b.notify()
}

// SetBrightness implements ports.Strip.
func (b *Board) SetBrightness(percent int) {
	b.mu.Lock()
	b.strip = percent
	b.mu.Unlock()
	b.notify()
}

// SetPosition implements ports.Actuator.
func (b *Board) SetPosition(percent int) {
	b.mu.Lock()
	b.motor = percent
	b.mu.Unlock()
	b.notify()
}

// PlayTone implements ports.ToneEmitter.
func (b *Board) PlayTone(freq float64, d time.Duration) {
	b.mu.Lock()
	t := Tone{Freq: freq, Duration: d}
	b.tone = &t
	b.tones = append(b.tones, t)
	b.mu.Unlock()
	b.notify()

	if b.emitter != nil {
		b.emitter.PlayTone(freq, d)
	}
}

// Snapshot returns a copy of the visible board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Tones returns every tone played so far.
func (b *Board) Tones() []Tone {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Tone(nil), b.tones...)
}

// Frames returns the recorded ring frames, oldest first.
func (b *Board) Frames() [][]color.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]color.RGBA(nil), b.frames...)
}

// ResetFrames drops the recorded ring frames.
func (b *Board) ResetFrames() {
	b.mu.Lock()
	b.frames = nil
	b.mu.Unlock()
}

func (b *Board) snapshotLocked() Snapshot {
	s := Snapshot{
		Ring:     append([]color.RGBA(nil), b.shown...),
		Lamps:    b.lamps,
		Strip:    b.strip,
		Actuator: b.motor,
		Flushes:  b.flushes,
	}
	if b.tone != nil {
		t := *b.tone
		s.Tone = &t
	}
	return s
}

func (b *Board) notify() {
	if b.listener == nil {
		return
	}
	b.listener(b.Snapshot())
}
