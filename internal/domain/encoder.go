package domain

// EncoderState tracks the logical encoder position for the active mode.
//
// Raw is the hardware position plus a seed offset, so entering a mode can
// place the encoder on a chosen value without writing to the input device.
// Mapped only changes when Raw differs from LastRaw.
type EncoderState struct {
	Raw     int
	LastRaw int
	Mapped  int

	offset int
}

// Observe folds a hardware position sample into the state and reports
// whether Mapped was recomputed.
func (e *EncoderState) Observe(position int, mode Mode) bool {
	e.Raw = position + e.offset
	if e.Raw == e.LastRaw {
		return false
	}
	e.Mapped = Map(e.Raw, mode)
	e.LastRaw = e.Raw
	return true
}

// Seed places the logical encoder on value given the current hardware
// position, and recomputes Mapped for mode.
func (e *EncoderState) Seed(position, value int, mode Mode) {
	e.offset = value - position
	e.Raw = value
	e.LastRaw = value
	e.Mapped = Map(value, mode)
}
