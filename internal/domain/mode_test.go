package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allModes = []Mode{ModeHome, ModeEdgelight, ModeMotor, ModeFocus, ModeFocusControl}

func TestMap_Range(t *testing.T) {
	for _, mode := range allModes {
		t.Run(mode.String(), func(t *testing.T) {
			n := mode.MaxVal()
			for raw := -3 * n; raw <= 3*n; raw++ {
				got := Map(raw, mode)
				if mode == ModeFocus {
					assert.GreaterOrEqual(t, got, 1, "raw=%d", raw)
					assert.LessOrEqual(t, got, n, "raw=%d", raw)
				} else {
					assert.GreaterOrEqual(t, got, 0, "raw=%d", raw)
					assert.Less(t, got, n, "raw=%d", raw)
				}
			}
		})
	}
}

func TestMap_Values(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		mode Mode
		want int
	}{
		{"home zero", 0, ModeHome, 0},
		{"home wraps", 16, ModeHome, 0},
		{"home negative", -1, ModeHome, 15},
		{"edgelight top", 100, ModeEdgelight, 100},
		{"edgelight wraps", 101, ModeEdgelight, 0},
		{"motor negative", -2, ModeMotor, 99},
		{"focus shifted", 0, ModeFocus, 1},
		{"focus top", 15, ModeFocus, 16},
		{"focus negative", -1, ModeFocus, 16},
		{"control negative", -4, ModeFocusControl, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.raw, tt.mode))
		})
	}
}

func TestHomeZone(t *testing.T) {
	for mapped := 0; mapped < RingSize; mapped++ {
		want := ZoneEdgelight
		if mapped >= HomePosFocus {
			want = ZoneFocus
		} else if mapped >= HomePosMotor {
			want = ZoneMotor
		}
		assert.Equal(t, want, HomeZone(mapped), "mapped=%d", mapped)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "focus_control", ModeFocusControl.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
