package domain

import "fmt"

// Mode identifies one of the five mutually exclusive interaction contexts.
type Mode uint8

const (
	ModeHome Mode = iota
	ModeEdgelight
	ModeMotor
	ModeFocus
	ModeFocusControl
)

// RingSize is the number of pixels on the addressable LED ring.
const RingSize = 16

// Home zone start offsets within the ring modulus.
const (
	HomePosEdgelight = 0
	HomePosMotor     = 6
	HomePosFocus     = 11
)

// Focus picker positions bound to the three session lengths.
const (
	FocusPosShort  = 5
	FocusPosMedium = 9
	FocusPosLong   = 13
)

// FocusControl options.
const (
	ControlBack  = 0
	ControlPause = 1
	ControlStop  = 2
)

// MaxVal returns the modulus the Position Mapper applies in this mode.
func (m Mode) MaxVal() int {
	switch m {
	case ModeHome:
		return RingSize
	case ModeEdgelight:
		return 101
	case ModeMotor:
		return 101
	case ModeFocus:
		return RingSize
	case ModeFocusControl:
		return 3
	}
	panic(fmt.Sprintf("domain: unknown mode %d", m))
}

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeHome:
		return "home"
	case ModeEdgelight:
		return "edgelight"
	case ModeMotor:
		return "motor"
	case ModeFocus:
		return "focus"
	case ModeFocusControl:
		return "focus_control"
	}
	return "unknown"
}

// Map converts an unbounded encoder position into the index scoped to mode.
// Negative positions wrap the same way positive ones do. Focus results are
// shifted into 1..MaxVal so they can be used directly as a fill count.
func Map(raw int, mode Mode) int {
	n := mode.MaxVal()
	v := raw % n
	if v < 0 {
		v += n
	}
	if mode == ModeFocus {
		return v + 1
	}
	return v
}

// Zone is a Home-mode selection target, also naming its indicator lamp.
type Zone uint8

const (
	ZoneEdgelight Zone = iota
	ZoneMotor
	ZoneFocus
)

// Zones lists every zone in ring order.
var Zones = []Zone{ZoneEdgelight, ZoneMotor, ZoneFocus}

func (z Zone) String() string {
	switch z {
	case ZoneEdgelight:
		return "edgelight"
	case ZoneMotor:
		return "motor"
	case ZoneFocus:
		return "focus"
	}
	return "unknown"
}

// HomeZone returns the zone a Home-mode mapped value falls in.
func HomeZone(mapped int) Zone {
	switch {
	case mapped >= HomePosFocus:
		return ZoneFocus
	case mapped >= HomePosMotor:
		return ZoneMotor
	default:
		return ZoneEdgelight
	}
}
