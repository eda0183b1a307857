package player

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	DefaultBrowseLimit = 30
	MaxBrowseLimit     = 100
)

// BrowseQuery drives the players table: filters, sort column and page.
// "all" or an empty value disables a dropdown filter.
type BrowseQuery struct {
	Search   string `form:"q"`
	Element  string `form:"element"`
	Position string `form:"position"`
	Affinity string `form:"affinity"`
	Role     string `form:"role"`
	Sort     string `form:"sort"`
	Dir      string `form:"dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Normalize fills defaults and clamps paging.
func (q *BrowseQuery) Normalize() {
	q.Search = strings.ToLower(strings.TrimSpace(q.Search))
	if q.Sort == "" {
		q.Sort = "kick"
	}
	if q.Dir == "" {
		q.Dir = "desc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultBrowseLimit
	}
	if q.Limit > MaxBrowseLimit {
		q.Limit = MaxBrowseLimit
	}
}

// BrowseResult is one page of the filtered and sorted players.
type BrowseResult struct {
	Players []Player
	Total   int64
	Fuzzy   bool
}

// Browse filters, sorts and paginates the selectable players. When a search
// matches nothing by substring it is retried as a fuzzy match.
func (d *Directory) Browse(q BrowseQuery) BrowseResult {
	q.Normalize()

	matches := d.filter(q, d.matchesSearch)
	fuzzyHit := false
	if len(matches) == 0 && q.Search != "" {
		matches = d.filter(q, d.matchesFuzzy)
		fuzzyHit = len(matches) > 0
	}

	sortPlayers(matches, q.Sort, q.Dir)

	total := int64(len(matches))
	start := (q.Page - 1) * q.Limit
	if start > len(matches) {
		start = len(matches)
	}
	end := start + q.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return BrowseResult{Players: matches[start:end], Total: total, Fuzzy: fuzzyHit}
}

func (d *Directory) filter(q BrowseQuery, search func(Player, string) bool) []Player {
	out := []Player{}
	for _, p := range d.selectable {
		if !facetMatches(q.Element, p.Element) ||
			!facetMatches(q.Position, p.Position) ||
			!facetMatches(q.Affinity, p.Affinity) ||
			!facetMatches(q.Role, p.Role) {
			continue
		}
		if q.Search != "" && !search(p, q.Search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func facetMatches(want, got string) bool {
	return want == "" || want == "all" || want == got
}

func (d *Directory) matchesSearch(p Player, q string) bool {
	if d.MatchesName(p, q) {
		return true
	}
	if p.Nickname == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Nickname), q) ||
		strings.Contains(strings.ToLower(d.names.Jp(p.Nickname)), q)
}

func (d *Directory) matchesFuzzy(p Player, q string) bool {
	return fuzzy.MatchNormalizedFold(q, p.Name) || fuzzy.MatchNormalizedFold(q, d.names.Jp(p.Name))
}

func sortPlayers(players []Player, key, dir string) {
	asc := dir == "asc"
	if key == "name" {
		sort.SliceStable(players, func(i, j int) bool {
			if asc {
				return players[i].Name < players[j].Name
			}
			return players[i].Name > players[j].Name
		})
		return
	}
	if _, ok := (Stats{}).Stat(key); !ok {
		key = "kick"
	}
	sort.SliceStable(players, func(i, j int) bool {
		a, _ := players[i].Stat(key)
		b, _ := players[j].Stat(key)
		if asc {
			return a < b
		}
		return a > b
	})
}
