package domain

import "image/color"

// Palette used by the ring and the zone lamps.
var (
	Red    = color.RGBA{R: 255, A: 255}
	Green  = color.RGBA{G: 255, A: 255}
	Blue   = color.RGBA{B: 255, A: 255}
	Black  = color.RGBA{A: 255}
	Orange = color.RGBA{R: 255, G: 165, A: 255}
	Silver = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	Purple = color.RGBA{R: 128, B: 128, A: 255}

	// SubtleGlow is the idle ring colour; SubtleGlowSelected marks filled pixels.
	SubtleGlow         = color.RGBA{R: 254, G: 245, B: 193, A: 255}
	SubtleGlowSelected = color.RGBA{R: 255, G: 204, B: 74, A: 255}
)

// Lerp blends from a to b by t per channel, truncating each result.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: ch(a.R, b.R),
		G: ch(a.G, b.G),
		B: ch(a.B, b.B),
		A: 255,
	}
}
