package formation

// Position is the two-letter role code shown on a slot.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MF"
	PositionForward    Position = "FW"
)

// Positions lists every position code in pitch order.
var Positions = []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward}

// Valid reports whether p is one of the known position codes.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// SlotDefinition is one starting position of a formation. X and Y are
// percentage offsets used for layout only.
type SlotDefinition struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
	X        float64  `json:"x" yaml:"x"`
	Y        float64  `json:"y" yaml:"y"`
}

// Template is a named starting lineup.
type Template struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Slots []SlotDefinition `json:"slots" yaml:"slots"`
}

// Slot returns the definition with the given id.
func (t Template) Slot(id string) (SlotDefinition, bool) {
	for _, s := range t.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return SlotDefinition{}, false
}
