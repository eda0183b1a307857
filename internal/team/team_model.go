package team

import (
	"errors"
	"fmt"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

const (
	// ReserveSlotCount is the fixed size of the bench.
	ReserveSlotCount = 5
	// DefaultTeamName is the name of a freshly created team.
	DefaultTeamName = "My Team"
	// CandidateLimit caps the slot picker list.
	CandidateLimit = 50

	reserveSlotPrefix = "reserve-"
)

var (
	ErrUnknownSlot       = errors.New("unknown slot")
	ErrPlaceholderPlayer = errors.New("placeholder players cannot be assigned")
)

// SlotKind tells starting slots from bench slots.
type SlotKind string

const (
	SlotStarting SlotKind = "starting"
	SlotReserve  SlotKind = "reserve"
)

// ReserveSlotID returns the id of the i-th bench slot.
func ReserveSlotID(i int) string {
	return fmt.Sprintf("%s%d", reserveSlotPrefix, i)
}

// RosterSlot is one position of the roster. Position is only set for
// starting slots; Player is nil when the slot is empty.
type RosterSlot struct {
	ID       string             `json:"slot_id"`
	Kind     SlotKind           `json:"kind"`
	Position formation.Position `json:"position,omitempty"`
	X        float64            `json:"x,omitempty"`
	Y        float64            `json:"y,omitempty"`
	Player   *player.Player     `json:"player"`
}

// Occupied reports whether a player sits in the slot.
func (s RosterSlot) Occupied() bool {
	return s.Player != nil
}

// TeamState is the full roster of one team: starting slots in formation
// order followed by the reserve slots.
type TeamState struct {
	Name      string             `json:"name"`
	Formation formation.Template `json:"formation"`
	Slots     []RosterSlot       `json:"slots"`
}

// Slot returns the slot with the given id.
func (s TeamState) Slot(id string) (RosterSlot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return RosterSlot{}, false
}

// Starting returns the starting slots.
func (s TeamState) Starting() []RosterSlot {
	return s.byKind(SlotStarting)
}

// Reserves returns the bench slots.
func (s TeamState) Reserves() []RosterSlot {
	return s.byKind(SlotReserve)
}

func (s TeamState) byKind(kind SlotKind) []RosterSlot {
	out := []RosterSlot{}
	for _, slot := range s.Slots {
		if slot.Kind == kind {
			out = append(out, slot)
		}
	}
	return out
}

// Clone returns a copy that shares no slot storage with s. Player records
// are immutable and shared by pointer.
func (s TeamState) Clone() TeamState {
	out := s
	out.Slots = make([]RosterSlot, len(s.Slots))
	copy(out.Slots, s.Slots)
	return out
}

// TeamStats is the element-wise sum over occupied starting slots.
type TeamStats struct {
	player.Stats
	Count int `json:"count"`
}

func startingSlots(t formation.Template) []RosterSlot {
	slots := make([]RosterSlot, 0, len(t.Slots))
	for _, def := range t.Slots {
		slots = append(slots, RosterSlot{
			ID:       def.ID,
			Kind:     SlotStarting,
			Position: def.Position,
			X:        def.X,
			Y:        def.Y,
		})
	}
	return slots
}

func reserveSlots() []RosterSlot {
	slots := make([]RosterSlot, 0, ReserveSlotCount)
	for i := 0; i < ReserveSlotCount; i++ {
		slots = append(slots, RosterSlot{ID: ReserveSlotID(i), Kind: SlotReserve})
	}
	return slots
}

// NewTeamState builds an empty team on the given formation.
func NewTeamState(name string, t formation.Template) TeamState {
	return TeamState{
		Name:      name,
		Formation: t,
		Slots:     append(startingSlots(t), reserveSlots()...),
	}
}
