package player

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Directory is the read-only player dataset. It is safe for concurrent use
// because nothing mutates it after construction.
type Directory struct {
	all        []Player
	selectable []Player
	byID       map[int]int
	names      *NameBook
}

// NewDirectory indexes players. Placeholder records are kept in All but are
// invisible to Lookup and Selectable. On duplicate ids the first record wins.
func NewDirectory(players []Player, names *NameBook) *Directory {
	if names == nil {
		names = NewNameBook(nil)
	}
	d := &Directory{
		all:   players,
		byID:  make(map[int]int, len(players)),
		names: names,
	}
	for _, p := range players {
		if p.IsPlaceholder() {
			continue
		}
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		d.byID[p.ID] = len(d.selectable)
		d.selectable = append(d.selectable, p)
	}
	return d
}

// LoadDirectory reads players.json and its companion name book.
func LoadDirectory(playersPath, namesPath string) (*Directory, error) {
	data, err := os.ReadFile(playersPath)
	if err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	var players []Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode %s: %w", playersPath, err)
	}
	names, err := LoadNameBook(namesPath)
	if err != nil {
		return nil, fmt.Errorf("load name book: %w", err)
	}
	return NewDirectory(players, names), nil
}

// Lookup resolves a player id. Placeholder records never resolve.
func (d *Directory) Lookup(id int) (Player, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Player{}, false
	}
	return d.selectable[i], true
}

// Selectable returns every non-placeholder record in dataset order.
// Callers must not modify the returned slice.
func (d *Directory) Selectable() []Player {
	return d.selectable
}

// All returns every record including placeholders, as loaded.
func (d *Directory) All() []Player {
	return d.all
}

// Names exposes the localized-name book.
func (d *Directory) Names() *NameBook {
	return d.names
}

// MatchesName reports whether the lowercased, trimmed query q is a substring
// of the player's English or localized name.
func (d *Directory) MatchesName(p Player, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(d.names.Jp(p.Name)), q)
}

// Closest returns the selectable player whose name is nearest to name by
// Levenshtein distance, looking at both naming conventions.
func (d *Directory) Closest(name string) (Player, int, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" || len(d.selectable) == 0 {
		return Player{}, 0, false
	}

	best, bestDistance := -1, 0
	for i, p := range d.selectable {
		distance := fuzzy.LevenshteinDistance(q, strings.ToLower(p.Name))
		if jp := d.names.Jp(p.Name); jp != p.Name {
			if jd := fuzzy.LevenshteinDistance(q, strings.ToLower(jp)); jd < distance {
				distance = jd
			}
		}
		if best < 0 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return d.selectable[best], bestDistance, true
}

// Affinities lists the distinct known affinities, sorted.
func (d *Directory) Affinities() []string {
	return d.distinct(func(p Player) string {
		if p.Affinity == "#N/A" || p.Affinity == "Unknown" {
			return ""
		}
		return p.Affinity
	})
}

// Roles lists the distinct roles, sorted.
func (d *Directory) Roles() []string {
	return d.distinct(func(p Player) string { return p.Role })
}

func (d *Directory) distinct(key func(Player) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range d.selectable {
		v := key(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
