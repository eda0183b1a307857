package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowFromPlayer(t *testing.T) {
	p := Player{
		ID: 42, Name: "Axel Blaze", NameJp: "Gouenji Shuuya", Position: "FW", Element: "Fire",
		Stats: Stats{Kick: 95, Control: 60, Intelligence: 70, Total: 520},
	}

	row := RowFromPlayer(p)
	assert.Zero(t, row.ID, "primary key is assigned by the database")
	assert.Equal(t, 42, row.ExternalID)
	assert.Equal(t, "Axel Blaze", row.Name)
	assert.Equal(t, "Gouenji Shuuya", row.NameJp)
	assert.Equal(t, 95, row.Kick)
	assert.Equal(t, 70, row.Intelligence)
	assert.Equal(t, 520, row.Total)
	assert.Equal(t, "players", Row{}.TableName())
}

func TestStats(t *testing.T) {
	sum := Stats{Kick: 1, Agility: 2, Total: 3}.Add(Stats{Kick: 10, Agility: 20, Total: 30})
	assert.Equal(t, Stats{Kick: 11, Agility: 22, Total: 33}, sum)

	for _, key := range StatKeys {
		_, ok := sum.Stat(key)
		assert.True(t, ok, key)
	}
	_, ok := sum.Stat("height")
	assert.False(t, ok)
}
