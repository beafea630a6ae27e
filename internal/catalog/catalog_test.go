package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonusRegularExcludesRareAndSpecial(t *testing.T) {
	for _, task := range BonusRegular() {
		assert.False(t, task.IsRare, "rare task leaked into the bonus pick: %q", task.Text)
		assert.False(t, task.IsSpecial, "special task leaked into the bonus pick: %q", task.Text)
	}
	assert.NotEmpty(t, BonusRegular())
}

func TestSentinelTasksExist(t *testing.T) {
	require.True(t, Rare().IsRare)
	require.True(t, Special().IsSpecial)
	require.True(t, Ultimate().IsUltimate)

	var penalties int
	for _, task := range Base() {
		if task.IsPenalty {
			penalties++
		}
	}
	assert.Equal(t, 1, penalties, "exactly one miss-a-turn task")
}
