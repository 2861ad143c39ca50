package mathx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(12, 0, 10))
	assert.Equal(t, 10, Clamp(12, 10, 0), "swapped bounds")
	assert.Equal(t, 1.0, Clamp(1.7, 0.0, 1.0))
}

func TestScale(t *testing.T) {
	assert.Equal(t, int16(500), Scale[int16](0, 500, 2500))
	assert.Equal(t, int16(1500), Scale[int16](50, 500, 2500))
	assert.Equal(t, int16(2500), Scale[int16](100, 500, 2500))
	assert.Equal(t, int16(2500), Scale[int16](140, 500, 2500))
	assert.Equal(t, uint32(655), Scale[uint32](1, 0, 65535))
}
