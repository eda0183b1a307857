package team

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t)
	s := e.State()

	assert.Equal(t, DefaultTeamName, s.Name)
	assert.Equal(t, "4-4-2", s.Formation.ID)
	assert.Len(t, s.Starting(), 11)
	require.Len(t, s.Reserves(), ReserveSlotCount)
	for i, slot := range s.Reserves() {
		assert.Equal(t, fmt.Sprintf("reserve-%d", i), slot.ID)
		assert.Empty(t, slot.Position)
	}
	assert.Empty(t, assignments(s))
}

func TestStateIsASnapshot(t *testing.T) {
	e := newTestEngine(t)
	s := e.State()
	s.Slots[0].Player = &player.Player{ID: 1}
	s.Name = "changed"

	assert.Empty(t, assignments(e.State()))
	assert.Equal(t, DefaultTeamName, e.State().Name)
}

func TestAssignPlayerMovesInsteadOfDuplicating(t *testing.T) {
	e := newTestEngine(t)
	axel := mustPlayer(t, e, 1)

	require.NoError(t, e.AssignPlayer("lst", axel))
	require.NoError(t, e.AssignPlayer("rst", axel))
	assert.Equal(t, map[string]int{"rst": 1}, assignments(e.State()))

	require.NoError(t, e.AssignPlayer("reserve-3", axel))
	assert.Equal(t, map[string]int{"reserve-3": 1}, assignments(e.State()))
}

func TestAssignPlayerUniquenessOverRandomSequences(t *testing.T) {
	e := newTestEngine(t)
	slots := e.State().Slots
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		slot := slots[rng.Intn(len(slots))].ID
		if rng.Intn(5) == 0 {
			require.NoError(t, e.ClearSlot(slot))
		} else {
			require.NoError(t, e.AssignPlayer(slot, mustPlayer(t, e, 1+rng.Intn(5))))
		}

		seen := make(map[int]string)
		for slotID, playerID := range assignments(e.State()) {
			other, dup := seen[playerID]
			require.False(t, dup, "player %d in %s and %s", playerID, other, slotID)
			seen[playerID] = slotID
		}
	}
}

func TestAssignPlayerErrors(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AssignPlayer("gk", mustPlayer(t, e, 4)))
	before := e.State()

	err := e.AssignPlayer("sweeper", mustPlayer(t, e, 1))
	assert.ErrorIs(t, err, ErrUnknownSlot)

	err = e.AssignPlayer("lst", &player.Player{ID: 6, Name: "???"})
	assert.ErrorIs(t, err, ErrPlaceholderPlayer)

	err = e.ClearSlot("reserve-9")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	assert.Equal(t, before, e.State())
}

func TestSetFormationKeepsSharedSlots(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AssignPlayer("lst", mustPlayer(t, e, 1)))
	require.NoError(t, e.AssignPlayer("lcb", mustPlayer(t, e, 5)))
	require.NoError(t, e.AssignPlayer("lm", mustPlayer(t, e, 2)))
	require.NoError(t, e.AssignPlayer("reserve-1", mustPlayer(t, e, 3)))

	require.NoError(t, e.SetFormation("4-3-3"))
	s := e.State()

	assert.Equal(t, "4-3-3", s.Formation.ID)
	assert.Equal(t, map[string]int{"lcb": 5, "reserve-1": 3}, assignments(s))
	_, ok := s.Slot("lst")
	assert.False(t, ok)
	_, ok = s.Slot("lm")
	assert.False(t, ok)
	assert.Len(t, s.Slots, 11+ReserveSlotCount)
}

func TestSetFormationUnknown(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AssignPlayer("lst", mustPlayer(t, e, 1)))
	before := e.State()

	err := e.SetFormation("2-2-6")
	assert.ErrorIs(t, err, formation.ErrUnknownFormation)
	assert.Equal(t, before, e.State())
}

func TestClearAllAndReset(t *testing.T) {
	e := newTestEngine(t)
	e.SetName("Raimon")
	require.NoError(t, e.SetFormation("3-5-2"))
	require.NoError(t, e.AssignPlayer("cb", mustPlayer(t, e, 5)))
	require.NoError(t, e.AssignPlayer("reserve-0", mustPlayer(t, e, 1)))

	e.ClearAll()
	s := e.State()
	assert.Empty(t, assignments(s))
	assert.Equal(t, "Raimon", s.Name)
	assert.Equal(t, "3-5-2", s.Formation.ID)

	e.Reset()
	assert.Equal(t, DefaultTeamName, e.State().Name)
	assert.Equal(t, "4-4-2", e.State().Formation.ID)
}

func TestComputeStatsEmpty(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AssignPlayer("reserve-0", mustPlayer(t, e, 4)))

	stats, ok := e.ComputeStats()
	assert.False(t, ok, "bench players alone do not make a team")
	assert.Equal(t, TeamStats{}, stats)
}

func TestComputeStatsSumsStartingSlotsOnly(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AssignPlayer("lst", mustPlayer(t, e, 1)))
	require.NoError(t, e.AssignPlayer("lcm", mustPlayer(t, e, 2)))
	require.NoError(t, e.AssignPlayer("rst", mustPlayer(t, e, 3)))
	require.NoError(t, e.AssignPlayer("reserve-0", mustPlayer(t, e, 4)))

	stats, ok := e.ComputeStats()
	require.True(t, ok)
	assert.Equal(t, 60, stats.Kick)
	assert.Equal(t, 210, stats.Total)
	assert.Zero(t, stats.Control)
	assert.Equal(t, 3, stats.Count)
}

func TestCandidates(t *testing.T) {
	catalog, err := formation.Builtin()
	require.NoError(t, err)
	dir := player.NewDirectory([]player.Player{
		{ID: 1, Name: "One", Position: "FW", Stats: player.Stats{Total: 50}},
		{ID: 2, Name: "Two", Position: "MF", Stats: player.Stats{Total: 90}},
		{ID: 3, Name: "Three", Position: "FW", Stats: player.Stats{Total: 70}},
	}, nil)
	e := NewEngine(catalog, dir)

	got, err := e.Candidates("lst", "")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, playerIDs(got))

	got, err = e.Candidates("reserve-0", "")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, playerIDs(got), "bench slots accept any position")

	got, err = e.Candidates("lst", "  ON ")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, playerIDs(got))

	p, _ := dir.Lookup(3)
	require.NoError(t, e.AssignPlayer("reserve-2", &p))
	got, err = e.Candidates("rst", "")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, playerIDs(got), "players on the roster are not offered")

	_, err = e.Candidates("libero", "")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestCandidatesExcludePlaceholdersAndMatchJapaneseNames(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Candidates("lst", "")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, playerIDs(got))

	got, err = e.Candidates("lst", "gouenji")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, playerIDs(got))
}

func TestCandidatesAreCapped(t *testing.T) {
	catalog, err := formation.Builtin()
	require.NoError(t, err)
	var players []player.Player
	for i := 1; i <= CandidateLimit+10; i++ {
		players = append(players, player.Player{ID: i, Name: fmt.Sprintf("Striker %d", i), Position: "FW", Stats: player.Stats{Total: i}})
	}
	e := NewEngine(catalog, player.NewDirectory(players, nil))

	got, err := e.Candidates("lst", "")
	require.NoError(t, err)
	require.Len(t, got, CandidateLimit)
	assert.Equal(t, CandidateLimit+10, got[0].ID)
}

func playerIDs(players []player.Player) []int {
	out := make([]int, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}
