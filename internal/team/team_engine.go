package team

import (
	"sort"
	"strings"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

// Engine owns the roster of one team and enforces its invariants: a player
// sits in at most one slot, the bench always has ReserveSlotCount slots and
// the starting slots mirror the active formation. An Engine is not safe for
// concurrent use.
type Engine struct {
	catalog *formation.Catalog
	dir     *player.Directory
	state   TeamState
}

// NewEngine starts an empty team on the catalog's default formation.
func NewEngine(catalog *formation.Catalog, dir *player.Directory) *Engine {
	return &Engine{
		catalog: catalog,
		dir:     dir,
		state:   NewTeamState(DefaultTeamName, catalog.Default()),
	}
}

// State returns a snapshot of the roster.
func (e *Engine) State() TeamState {
	return e.state.Clone()
}

// Reset drops every change and returns to the default empty team.
func (e *Engine) Reset() {
	e.state = NewTeamState(DefaultTeamName, e.catalog.Default())
}

// SetName renames the team.
func (e *Engine) SetName(name string) {
	e.state.Name = name
}

// SetFormation switches to another template. Players in slot ids present in
// both templates stay; the others leave with their slots. Reserves are
// untouched. An unknown id leaves the state as it was.
func (e *Engine) SetFormation(templateID string) error {
	t, err := e.catalog.Find(templateID)
	if err != nil {
		return err
	}
	e.state = withFormation(e.state, t)
	return nil
}

func withFormation(s TeamState, t formation.Template) TeamState {
	previous := make(map[string]*player.Player)
	for _, slot := range s.Slots {
		if slot.Kind == SlotStarting && slot.Player != nil {
			previous[slot.ID] = slot.Player
		}
	}

	starting := startingSlots(t)
	for i := range starting {
		starting[i].Player = previous[starting[i].ID]
	}

	out := TeamState{Name: s.Name, Formation: t, Slots: starting}
	for _, slot := range s.Slots {
		if slot.Kind == SlotReserve {
			out.Slots = append(out.Slots, slot)
		}
	}
	return out
}

func (e *Engine) slotIndex(slotID string) int {
	for i, slot := range e.state.Slots {
		if slot.ID == slotID {
			return i
		}
	}
	return -1
}

// AssignPlayer puts p in the slot. A player already sitting elsewhere is
// moved, never duplicated. A nil p clears the slot.
func (e *Engine) AssignPlayer(slotID string, p *player.Player) error {
	target := e.slotIndex(slotID)
	if target < 0 {
		return ErrUnknownSlot
	}
	if p == nil {
		e.state.Slots[target].Player = nil
		return nil
	}
	if p.IsPlaceholder() {
		return ErrPlaceholderPlayer
	}

	for i := range e.state.Slots {
		if i != target && e.state.Slots[i].Player != nil && e.state.Slots[i].Player.ID == p.ID {
			e.state.Slots[i].Player = nil
		}
	}
	assigned := *p
	e.state.Slots[target].Player = &assigned
	return nil
}

// ClearSlot empties one slot.
func (e *Engine) ClearSlot(slotID string) error {
	return e.AssignPlayer(slotID, nil)
}

// ClearAll empties every slot. Name and formation are kept.
func (e *Engine) ClearAll() {
	for i := range e.state.Slots {
		e.state.Slots[i].Player = nil
	}
}

// ComputeStats sums the attributes of the players in starting slots. The
// boolean is false when no starting slot is occupied, whatever the bench.
func (e *Engine) ComputeStats() (TeamStats, bool) {
	return computeStats(e.state)
}

func computeStats(s TeamState) (TeamStats, bool) {
	var stats TeamStats
	for _, slot := range s.Slots {
		if slot.Kind != SlotStarting || slot.Player == nil {
			continue
		}
		stats.Stats = stats.Stats.Add(slot.Player.Stats)
		stats.Count++
	}
	if stats.Count == 0 {
		return TeamStats{}, false
	}
	return stats, true
}

// Candidates lists the players that may go into the slot: real players not
// already on the roster, of the slot's position for starting slots, whose
// name in either convention contains query (case-insensitive). The list is
// ordered by total descending and capped at CandidateLimit.
func (e *Engine) Candidates(slotID, query string) ([]player.Player, error) {
	idx := e.slotIndex(slotID)
	if idx < 0 {
		return nil, ErrUnknownSlot
	}
	slot := e.state.Slots[idx]

	assigned := make(map[int]struct{})
	for _, s := range e.state.Slots {
		if s.Player != nil {
			assigned[s.Player.ID] = struct{}{}
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []player.Player{}
	for _, p := range e.dir.Selectable() {
		if _, taken := assigned[p.ID]; taken {
			continue
		}
		if slot.Kind == SlotStarting && p.Position != string(slot.Position) {
			continue
		}
		if !e.dir.MatchesName(p, q) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if len(out) > CandidateLimit {
		out = out[:CandidateLimit]
	}
	return out, nil
}

// resolve looks a player id up, treating placeholders as missing.
func (e *Engine) resolve(id int) (*player.Player, bool) {
	p, ok := e.dir.Lookup(id)
	if !ok || p.IsPlaceholder() {
		return nil, false
	}
	return &p, true
}

// placeAll overwrites the slots of s with the given slot -> player pairs,
// processed in order. A later pair wins over an earlier one both for the
// same slot and for the same player, so no player ends up twice. Unknown
// slot ids are skipped.
func placeAll(s *TeamState, pairs []placement) {
	for _, pl := range pairs {
		target := -1
		for i := range s.Slots {
			if s.Slots[i].ID == pl.slotID {
				target = i
				break
			}
		}
		if target < 0 {
			continue
		}
		if pl.player != nil {
			for i := range s.Slots {
				if i != target && s.Slots[i].Player != nil && s.Slots[i].Player.ID == pl.player.ID {
					s.Slots[i].Player = nil
				}
			}
		}
		s.Slots[target].Player = pl.player
	}
}

type placement struct {
	slotID string
	player *player.Player
}
