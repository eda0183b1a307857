package player

import "strings"

// PlaceholderName marks a record that stands for "no real character".
const PlaceholderName = "???"

// Stats holds the seven skill attributes and their precomputed total.
type Stats struct {
	Kick         int `json:"kick"`
	Control      int `json:"control"`
	Technique    int `json:"technique"`
	Pressure     int `json:"pressure"`
	Physical     int `json:"physical"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Total        int `json:"total"`
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Kick:         s.Kick + o.Kick,
		Control:      s.Control + o.Control,
		Technique:    s.Technique + o.Technique,
		Pressure:     s.Pressure + o.Pressure,
		Physical:     s.Physical + o.Physical,
		Agility:      s.Agility + o.Agility,
		Intelligence: s.Intelligence + o.Intelligence,
		Total:        s.Total + o.Total,
	}
}

// Player is one record of the synced players.json. Records are never
// mutated after the directory is loaded.
type Player struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname,omitempty"`
	NameJp      string `json:"nameJp,omitempty"`
	Image       string `json:"image,omitempty"`
	Game        string `json:"game,omitempty"`
	Position    string `json:"position"`
	AltPosition string `json:"altPosition,omitempty"`
	Element     string `json:"element,omitempty"`
	Affinity    string `json:"affinity,omitempty"`
	Role        string `json:"role,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Stats
}

// IsPlaceholder reports whether the record must stay out of every
// selectable pool: empty, blank or "???" names.
func (p Player) IsPlaceholder() bool {
	name := strings.TrimSpace(p.Name)
	return name == "" || name == PlaceholderName
}

// StatKeys are the sortable numeric columns.
var StatKeys = []string{"total", "kick", "control", "technique", "pressure", "physical", "agility", "intelligence"}

// Stat returns the value of a numeric column by key.
func (s Stats) Stat(key string) (int, bool) {
	switch key {
	case "kick":
		return s.Kick, true
	case "control":
		return s.Control, true
	case "technique":
		return s.Technique, true
	case "pressure":
		return s.Pressure, true
	case "physical":
		return s.Physical, true
	case "agility":
		return s.Agility, true
	case "intelligence":
		return s.Intelligence, true
	case "total":
		return s.Total, true
	}
	return 0, false
}
