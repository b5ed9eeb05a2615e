package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seek struct {
	to float64
	ok bool
}

func ticks(c *Controller, ts ...float64) []seek {
	out := make([]seek, 0, len(ts))
	for _, t := range ts {
		to, ok := c.OnTick(t)
		out = append(out, seek{to, ok})
	}
	return out
}

func TestController_StartAndEnd(t *testing.T) {
	c := New()
	require.True(t, c.Submit("00:10", "00:20"))
	assert.Equal(t, Armed, c.State())

	got := ticks(c, 5, 15, 25)
	assert.Equal(t, []seek{{10, true}, {0, false}, {10, true}}, got)
}

func TestController_Boundaries(t *testing.T) {
	c := New()
	require.True(t, c.Submit("10", "20"))
	got := ticks(c, 10, 20, 20.01)
	assert.Equal(t, []seek{{0, false}, {0, false}, {10, true}}, got)
}

func TestController_StartOnly(t *testing.T) {
	c := New()
	require.True(t, c.Submit("1:00", "garbage"))
	w := c.Window()
	assert.True(t, w.HasStart)
	assert.False(t, w.HasEnd)

	got := ticks(c, 30, 60, 9999)
	assert.Equal(t, []seek{{60, true}, {0, false}, {0, false}}, got)
}

func TestController_EndOnlySnapsToZero(t *testing.T) {
	c := New()
	require.True(t, c.Submit("", "5"))
	got := ticks(c, 0, 4.9, 5.1)
	assert.Equal(t, []seek{{0, false}, {0, false}, {0, true}}, got)
}

func TestController_InvalidSubmitIsNoop(t *testing.T) {
	c := New()
	require.True(t, c.Submit("10", "20"))
	c.Stop()

	assert.False(t, c.Submit("abc", "1:2:3"))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Window{Start: 10, End: 20, HasStart: true, HasEnd: true}, c.Window())
}

func TestController_SubmitReplacesWholesale(t *testing.T) {
	c := New()
	require.True(t, c.Submit("10", "20"))
	require.True(t, c.Submit("", "30"))
	assert.Equal(t, Window{End: 30, HasEnd: true}, c.Window())

	// l'ancien début n'est plus appliqué
	_, ok := c.OnTick(5)
	assert.False(t, ok)
}

func TestController_StopKeepsWindowAndDisarms(t *testing.T) {
	c := New()
	require.True(t, c.Submit("10", "20"))
	c.Stop()

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 10.0, c.Window().Start)
	_, ok := c.OnTick(25)
	assert.False(t, ok)

	// Stop en Idle ne fait rien de plus
	c.Stop()
	assert.Equal(t, Idle, c.State())
}

func TestController_IdleNeverSeeks(t *testing.T) {
	c := New()
	for _, tt := range []float64{0, 1, 1000} {
		_, ok := c.OnTick(tt)
		assert.False(t, ok)
	}
}
