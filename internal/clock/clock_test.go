package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sigconform/sigconform/internal/clock"
)

func TestRealClock_Now(t *testing.T) {
	t.Parallel()

	c := clock.RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "Now() should not be before the surrounding time.Now() calls")
	assert.False(t, got.After(after), "Now() should not be after the surrounding time.Now() calls")
}

func TestFixed_Now(t *testing.T) {
	t.Parallel()

	pinned := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := clock.Fixed{Time: pinned}

	assert.Equal(t, pinned, c.Now())
	// Stable across calls.
	assert.Equal(t, c.Now(), c.Now())
}
