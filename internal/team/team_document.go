package team

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ErrImport is returned when a team document cannot be read. The roster is
// left unchanged.
var ErrImport = errors.New("invalid team file")

// DocumentPlayer is one occupied slot of a team document.
type DocumentPlayer struct {
	Slot     string `json:"slot"`
	PlayerID int    `json:"playerId"`
}

// Document is the downloadable, self-contained form of a team.
type Document struct {
	Name      string           `json:"name"`
	Formation string           `json:"formation"`
	Players   []DocumentPlayer `json:"players"`
}

// NewDocument lists the occupied slots of s in roster order.
func NewDocument(s TeamState) Document {
	doc := Document{Name: s.Name, Formation: s.Formation.ID, Players: []DocumentPlayer{}}
	for _, slot := range s.Slots {
		if slot.Player != nil {
			doc.Players = append(doc.Players, DocumentPlayer{Slot: slot.ID, PlayerID: slot.Player.ID})
		}
	}
	return doc
}

// ExportDocument renders s as pretty-printed JSON with a two-space indent.
func ExportDocument(s TeamState) ([]byte, error) {
	out, err := json.MarshalIndent(NewDocument(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode team document: %w", err)
	}
	return out, nil
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// DocumentFilename derives the download name from the team name: lowercased,
// whitespace runs replaced by hyphens.
func DocumentFilename(teamName string) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(teamName), "-")
	slug = unsafeFileChars.ReplaceAllString(slug, "-")
	if strings.Trim(slug, "-.") == "" {
		slug = "team"
	}
	return slug + ".json"
}

type importedPlayer struct {
	Slot     string          `json:"slot"`
	PlayerID json.RawMessage `json:"playerId"`
}

type importedDocument struct {
	Name      *string          `json:"name"`
	Formation *string          `json:"formation"`
	Players   []importedPlayer `json:"players"`
}

// playerID reads a JSON number with an integral value, so 4, 4.0 and 4e0
// all name player 4. Strings, fractions and missing ids are unresolvable.
func (p importedPlayer) playerID() (int, bool) {
	if len(p.PlayerID) == 0 {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(p.PlayerID))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if id, err := n.Int64(); err == nil {
		return int(id), id >= math.MinInt32 && id <= math.MaxInt32
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ImportDocument overwrites the team with a document. The name is adopted
// when present, the formation when present and known. Every slot of the
// resulting roster is then rewritten: a slot without an entry, or whose
// player does not resolve, ends up empty. Nothing changes when the document
// is not valid JSON of the expected shape.
func (e *Engine) ImportDocument(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrImport)
	}
	var doc importedDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}

	next := e.state.Clone()
	if doc.Name != nil {
		next.Name = *doc.Name
	}
	if doc.Formation != nil {
		if t, err := e.catalog.Find(*doc.Formation); err == nil {
			next = withFormation(next, t)
		}
	}

	pairs := make([]placement, 0, len(next.Slots))
	for _, slot := range next.Slots {
		pl := placement{slotID: slot.ID}
		for _, entry := range doc.Players {
			if entry.Slot != slot.ID {
				continue
			}
			if id, ok := entry.playerID(); ok {
				if p, found := e.resolve(id); found {
					pl.player = p
				}
			}
			break
		}
		pairs = append(pairs, pl)
	}
	placeAll(&next, pairs)

	e.state = next
	return nil
}
