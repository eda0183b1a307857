package team

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

const (
	// ShareTokenVersion is written into every new token. Tokens without a
	// version field are version 0 and decode the same way.
	ShareTokenVersion = 1
	// ShareQueryParam carries the token on the team builder URL.
	ShareQueryParam = "t"
	// SharePath is the team builder page of the front end.
	SharePath = "/teams"
)

var ErrMalformedShareToken = errors.New("malformed share token")

type sharePayload struct {
	V *int    `json:"v,omitempty"`
	N *string `json:"n,omitempty"`
	F string  `json:"f"`
	P string  `json:"p"`
}

// ShareEntry is one "slot:player" pair of a token.
type ShareEntry struct {
	SlotID   string
	PlayerID int
}

// ShareToken is the decoded, not yet resolved, content of a token.
type ShareToken struct {
	Version     int
	Name        *string
	FormationID string
	Entries     []ShareEntry
}

// EncodeShareToken renders the compact form of s: name, formation id and
// the occupied slots in roster order.
func EncodeShareToken(s TeamState) (string, error) {
	pairs := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.Player != nil {
			pairs = append(pairs, slot.ID+":"+strconv.Itoa(slot.Player.ID))
		}
	}

	version := ShareTokenVersion
	name := s.Name
	raw, err := json.Marshal(sharePayload{
		V: &version,
		N: &name,
		F: s.Formation.ID,
		P: strings.Join(pairs, ","),
	})
	if err != nil {
		return "", fmt.Errorf("encode share token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ParseShareToken decodes the base64 and JSON layers of a token. Entries
// that are not "slot:number" are dropped.
func ParseShareToken(token string) (ShareToken, error) {
	// A "+" that went through form decoding comes back as a space.
	token = strings.ReplaceAll(strings.TrimSpace(token), " ", "+")

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return ShareToken{}, fmt.Errorf("%w: %v", ErrMalformedShareToken, err)
	}
	var payload sharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ShareToken{}, fmt.Errorf("%w: %v", ErrMalformedShareToken, err)
	}

	out := ShareToken{Name: payload.N, FormationID: payload.F}
	if payload.V != nil {
		out.Version = *payload.V
	}
	if out.Version < 0 || out.Version > ShareTokenVersion {
		return ShareToken{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedShareToken, out.Version)
	}

	for _, pair := range strings.Split(payload.P, ",") {
		slotID, playerID, found := strings.Cut(pair, ":")
		if !found || slotID == "" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(playerID))
		if err != nil {
			continue
		}
		out.Entries = append(out.Entries, ShareEntry{SlotID: slotID, PlayerID: id})
	}
	return out, nil
}

// ApplyShareToken replaces the whole roster with the team described by
// token. Unknown slots and unresolvable players are skipped; when two
// entries name the same player only the later slot keeps it. A token that does
// not decode, or names an unknown formation, leaves the state untouched and
// returns an error wrapping ErrMalformedShareToken.
func (e *Engine) ApplyShareToken(token string) error {
	parsed, err := ParseShareToken(token)
	if err != nil {
		return err
	}
	t, err := e.catalog.Find(parsed.FormationID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedShareToken, err)
	}

	next := NewTeamState(DefaultTeamName, t)
	pairs := make([]placement, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		p, ok := e.resolve(entry.PlayerID)
		if !ok {
			continue
		}
		pairs = append(pairs, placement{slotID: entry.SlotID, player: p})
	}
	placeAll(&next, pairs)
	if parsed.Name != nil {
		next.Name = *parsed.Name
	}

	e.state = next
	return nil
}

// NewEngineFromShareToken builds the engine a visitor lands on. A bad token
// yields the default empty team; the error is returned for logging only.
func NewEngineFromShareToken(catalog *formation.Catalog, dir *player.Directory, token string) (*Engine, error) {
	e := NewEngine(catalog, dir)
	if token == "" {
		return e, nil
	}
	return e, e.ApplyShareToken(token)
}

// ShareURL is the team builder link carrying token.
func ShareURL(frontendURL, token string) string {
	v := url.Values{}
	v.Set(ShareQueryParam, token)
	return strings.TrimRight(frontendURL, "/") + SharePath + "?" + v.Encode()
}
