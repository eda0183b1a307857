package team

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

func fixturePlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Axel Blaze", Position: "FW", Stats: player.Stats{Kick: 10, Total: 50}},
		{ID: 2, Name: "Jude Sharp", Position: "MF", Stats: player.Stats{Kick: 20, Total: 90}},
		{ID: 3, Name: "Shawn Frost", Position: "FW", Stats: player.Stats{Kick: 30, Total: 70}},
		{ID: 4, Name: "Mark Evans", Position: "GK", Stats: player.Stats{Kick: 99, Total: 60}},
		{ID: 5, Name: "Jack Wallside", Position: "DF", Stats: player.Stats{Kick: 5, Total: 40}},
		{ID: 6, Name: "???", Position: "FW", Stats: player.Stats{Total: 999}},
	}
}

func newFixture(t *testing.T) (*formation.Catalog, *player.Directory) {
	t.Helper()
	catalog, err := formation.Builtin()
	require.NoError(t, err)
	names := player.NewNameBook(map[string]string{"Axel Blaze": "Shuuya Gouenji"})
	return catalog, player.NewDirectory(fixturePlayers(), names)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(newFixture(t))
}

func mustPlayer(t *testing.T, e *Engine, id int) *player.Player {
	t.Helper()
	p, ok := e.resolve(id)
	require.True(t, ok, "player %d", id)
	return p
}

// assignments maps slot id to player id for the occupied slots of s.
func assignments(s TeamState) map[string]int {
	out := make(map[string]int)
	for _, slot := range s.Slots {
		if slot.Player != nil {
			out[slot.ID] = slot.Player.ID
		}
	}
	return out
}
