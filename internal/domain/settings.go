package domain

import "time"

// Settings holds the tunables the controller needs at runtime.
type Settings struct {
	PollInterval     time.Duration
	Debounce         time.Duration
	MotorIdleTimeout time.Duration
	FocusShort       time.Duration
	FocusMedium      time.Duration
	FocusLong        time.Duration
}

// DefaultSettings returns the stock gadget timings.
func DefaultSettings() Settings {
	return Settings{
		PollInterval:     10 * time.Millisecond,
		Debounce:         300 * time.Millisecond,
		MotorIdleTimeout: 15 * time.Second,
		FocusShort:       30 * time.Minute,
		FocusMedium:      45 * time.Minute,
		FocusLong:        60 * time.Minute,
	}
}

// FocusLength returns the session length bound to a Focus picker position.
func (s Settings) FocusLength(mapped int) (time.Duration, bool) {
	switch mapped {
	case FocusPosShort:
		return s.FocusShort, true
	case FocusPosMedium:
		return s.FocusMedium, true
	case FocusPosLong:
		return s.FocusLong, true
	}
	return 0, false
}

// IsFocusAnchor reports whether mapped lands on one of the picker anchors.
func IsFocusAnchor(mapped int) bool {
	return mapped == FocusPosShort || mapped == FocusPosMedium || mapped == FocusPosLong
}
