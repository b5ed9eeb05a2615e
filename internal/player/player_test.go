package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtual_ApplyAndCommands(t *testing.T) {
	v := NewVirtual()
	assert.True(t, v.Paused())

	v.Apply(Event{Kind: EventPlay, Time: 3})
	assert.False(t, v.Paused())
	assert.Equal(t, 3.0, v.CurrentTime())

	v.Apply(Event{Kind: EventTick, Time: 4.5})
	assert.False(t, v.Paused())
	assert.Equal(t, 4.5, v.CurrentTime())

	v.Seek(10)
	v.Pause()
	assert.Equal(t, 10.0, v.CurrentTime())
	assert.True(t, v.Paused())

	cmds := v.Drain()
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Kind: CommandSeek, Time: 10}, cmds[0])
	assert.Equal(t, Command{Kind: CommandPause}, cmds[1])
	assert.Empty(t, v.Drain())
}

func TestParseEventKind(t *testing.T) {
	k, err := ParseEventKind("pause")
	require.NoError(t, err)
	assert.Equal(t, EventPause, k)

	_, err = ParseEventKind("seeked")
	assert.Error(t, err)
}
