package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationWithinBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	base := time.Second
	max := 4 * time.Second

	d := ExponentialBackoff(base, max, 10, 0)
	assert.Equal(t, max, d)

	d = ExponentialBackoff(base, max, 0, 0)
	assert.Equal(t, base, d)
}
