// Package ports defines the collaborator interfaces the controller drives.
// Hardware, storage and notification adapters implement them.
package ports

import (
	"image/color"
	"time"

	"github.com/xvierd/focusdial/internal/domain"
)

// ButtonLevel is the sampled push-button level.
type ButtonLevel bool

const (
	ButtonReleased ButtonLevel = false
	ButtonPressed  ButtonLevel = true
)

// Input is the polled digital input collaborator.
// This is a driven port (implemented by adapters).
type Input interface {
	// Position returns the encoder count. It moves freely in both directions.
	Position() int

	// Button returns the current push-button level.
	Button() ButtonLevel
}

// ZoneLamps drives the three discrete RGB indicator lamps.
type ZoneLamps interface {
	SetZoneLamp(zone domain.Zone, c color.RGBA)
}

// Ring drives the addressable LED ring. Pixels are buffered until Flush.
type Ring interface {
	Len() int
	SetPixel(i int, c color.RGBA)
	Flush()
}

// Strip drives the dimmable light strip, brightness 0..100.
type Strip interface {
	SetBrightness(percent int)
}

// Actuator drives the position-controlled actuator, 0..100.
type Actuator interface {
	SetPosition(percent int)
}

// ToneEmitter plays audible feedback. PlayTone blocks for d.
type ToneEmitter interface {
	PlayTone(freq float64, d time.Duration)
}

// Board is the full set of output collaborators owned by the controller.
type Board interface {
	ZoneLamps
	Ring
	Strip
	Actuator
	ToneEmitter
}
