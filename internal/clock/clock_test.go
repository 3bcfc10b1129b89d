package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed_ReturnsUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2025, 3, 10, 13, 0, 0, 0, loc)

	now := NewFixed(at).Now()
	assert.True(t, now.Equal(at))
	assert.Equal(t, time.UTC, now.Location())
}

func TestManual_Advance(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clk := NewManual(start)

	assert.True(t, clk.Now().Equal(start))
	clk.Advance(90 * time.Minute)
	assert.True(t, clk.Now().Equal(start.Add(90*time.Minute)))
}
