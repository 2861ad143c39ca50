//go:build rp2040

// Package board drives the real gadget on an RP2040.
package board

import (
	"image/color"
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/mathx"
	"github.com/xvierd/focusdial/internal/ports"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ws2812"
)

// Pins is the board wiring. Lamp and strip triples are R, G, B.
type Pins struct {
	EncoderA machine.Pin
	EncoderB machine.Pin
	Button   machine.Pin
	Ring     machine.Pin
	Servo    machine.Pin
	Buzzer   machine.Pin

	Lamps [3][3]machine.Pin // indexed by domain.Zone
	Strip [3]machine.Pin
}

// DefaultPins is the prototype wiring.
var DefaultPins = Pins{
	EncoderA: machine.GPIO2,
	EncoderB: machine.GPIO3,
	Button:   machine.GPIO4,
	Ring:     machine.GPIO5,
	Servo:    machine.GPIO26,
	Buzzer:   machine.GPIO28,
	Lamps: [3][3]machine.Pin{
		domain.ZoneEdgelight: {machine.GPIO9, machine.GPIO10, machine.GPIO11},
		domain.ZoneMotor:     {machine.GPIO13, machine.GPIO14, machine.GPIO15},
		domain.ZoneFocus:     {machine.GPIO6, machine.GPIO7, machine.GPIO8},
	},
	Strip: [3]machine.Pin{machine.GPIO18, machine.GPIO17, machine.GPIO16},
}

// Config tunes the hardware outputs.
type Config struct {
	Pins     Pins
	RingSize int
	Reverse  bool
	MinPulse time.Duration
	MaxPulse time.Duration
}

// DefaultConfig returns the prototype configuration.
func DefaultConfig() Config {
	return Config{
		Pins:     DefaultPins,
		RingSize: domain.RingSize,
		Reverse:  true,
		MinPulse: 500 * time.Microsecond,
		MaxPulse: 2500 * time.Microsecond,
	}
}

const (
	dimmerPeriod = 1e9 / 1000 // 1 kHz
	servoPeriod  = 1e9 / 50
)

// pwmCtrl is the part of a machine PWM slice the board uses.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	SetPeriod(period uint64) error
}

func pwmForPin(pin machine.Pin) pwmCtrl {
	switch (uint8(pin) >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// dimmer is one PWM channel driven as a 0..255 level.
type dimmer struct {
	ctrl pwmCtrl
	ch   uint8
}

func newDimmer(pin machine.Pin, period uint64) (*dimmer, error) {
	ctrl := pwmForPin(pin)
	if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
		return nil, err
	}
	ch, err := ctrl.Channel(pin)
	if err != nil {
		return nil, err
	}
	return &dimmer{ctrl: ctrl, ch: ch}, nil
}

func (d *dimmer) set(level uint8) {
	d.ctrl.Set(d.ch, d.ctrl.Top()*uint32(level)/255)
}

func (d *dimmer) setPercent(p int) {
	d.ctrl.Set(d.ch, mathx.Scale(p, 0, d.ctrl.Top()))
}

// Board implements ports.Input and ports.Board on the RP2040.
type Board struct {
	cfg Config

	encoder *encoders.QuadratureDevice
	button  machine.Pin

	ring   ws2812.Device
	pixels []color.RGBA

	lamps  [3][3]*dimmer
	strip  [3]*dimmer
	servo  servo.Servo
	buzzer *dimmer
}

// Ensure Board implements the hardware ports.
var (
	_ ports.Input = (*Board)(nil)
	_ ports.Board = (*Board)(nil)
)

// New configures every peripheral and returns the board with all outputs
// dark. The actuator is left untouched until the controller drives it.
func New(cfg Config) (*Board, error) {
	p := cfg.Pins
	b := &Board{
		cfg:    cfg,
		button: p.Button,
		pixels: make([]color.RGBA, cfg.RingSize),
	}

	b.encoder = encoders.NewQuadratureViaInterrupt(p.EncoderA, p.EncoderB)
	b.encoder.Configure(encoders.QuadratureConfig{Precision: 4})

	p.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	p.Ring.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.ring = ws2812.New(p.Ring)

	var err error
	for z := range p.Lamps {
		for c, pin := range p.Lamps[z] {
			if b.lamps[z][c], err = newDimmer(pin, dimmerPeriod); err != nil {
				return nil, err
			}
		}
	}
	for c, pin := range p.Strip {
		if b.strip[c], err = newDimmer(pin, dimmerPeriod); err != nil {
			return nil, err
		}
	}
	if b.buzzer, err = newDimmer(p.Buzzer, dimmerPeriod); err != nil {
		return nil, err
	}

	// The servo configures its slice for 50 Hz itself.
	if b.servo, err = servo.New(pwmForPin(p.Servo), p.Servo); err != nil {
		return nil, err
	}

	b.Flush()
	return b, nil
}

// Position implements ports.Input.
func (b *Board) Position() int {
	pos := b.encoder.Position()
	if b.cfg.Reverse {
		return -pos
	}
	return pos
}

// Button implements ports.Input. The switch pulls the pin low.
func (b *Board) Button() ports.ButtonLevel {
	return ports.ButtonLevel(!b.button.Get())
}

// SetZoneLamp implements ports.ZoneLamps.
func (b *Board) SetZoneLamp(zone domain.Zone, c color.RGBA) {
	if int(zone) >= len(b.lamps) {
		return
	}
	l := b.lamps[zone]
	l[0].set(c.R)
	l[1].set(c.G)
	l[2].set(c.B)
}

// Len implements ports.Ring.
func (b *Board) Len() int {
	return len(b.pixels)
}

// SetPixel implements ports.Ring.
func (b *Board) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(b.pixels) {
		return
	}
	b.pixels[i] = c
}

// Flush implements ports.Ring. The WS2812 protocol is timing sensitive, so
// interrupts stay off while the frame is clocked out.
func (b *Board) Flush() {
	state := interrupt.Disable()
	_ = b.ring.WriteColors(b.pixels)
	interrupt.Restore(state)
}

// SetBrightness implements ports.Strip.
func (b *Board) SetBrightness(percent int) {
	for _, d := range b.strip {
		d.setPercent(percent)
	}
}

// SetPosition implements ports.Actuator.
func (b *Board) SetPosition(percent int) {
	lo := int16(b.cfg.MinPulse / time.Microsecond)
	hi := int16(b.cfg.MaxPulse / time.Microsecond)
	b.servo.SetMicroseconds(mathx.Scale(percent, lo, hi))
}

// PlayTone implements ports.ToneEmitter. It blocks for d.
func (b *Board) PlayTone(freq float64, d time.Duration) {
	if freq <= 0 || d <= 0 {
		return
	}
	if err := b.buzzer.ctrl.SetPeriod(uint64(1e9 / freq)); err != nil {
		time.Sleep(d)
		return
	}
	b.buzzer.set(128)
	time.Sleep(d)
	b.buzzer.set(0)
	_ = b.buzzer.ctrl.SetPeriod(dimmerPeriod)
}
