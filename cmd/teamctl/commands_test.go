package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/internal/team"
)

func fixture(t *testing.T) (*formation.Catalog, *player.Directory) {
	t.Helper()
	catalog, err := formation.Builtin()
	require.NoError(t, err)
	dir, err := loadDirectory("../../data")
	require.NoError(t, err)
	return catalog, dir
}

func TestWriteFormations(t *testing.T) {
	catalog, _ := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, writeFormations(&buf, catalog))

	reloaded, err := formation.NewCatalog(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, catalog.List(), reloaded.List())
	assert.Contains(t, buf.String(), "\n  slots:")

	var raw []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "4-4-2", raw[0]["id"])
}

func TestShareEncodeDecode(t *testing.T) {
	catalog, dir := fixture(t)
	doc := []byte(`{"name": "Raimon", "formation": "4-3-3", "players": [{"slot": "gk", "playerId": 1}, {"slot": "st", "playerId": 2}]}`)

	token, err := encodeShare(catalog, dir, doc)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, decodeShare(&out, catalog, dir, token))
	assert.JSONEq(t, string(doc), out.String())

	_, err = encodeShare(catalog, dir, []byte("nope"))
	assert.ErrorIs(t, err, team.ErrImport)
	assert.ErrorIs(t, decodeShare(&out, catalog, dir, "nope!"), team.ErrMalformedShareToken)
}

type recordingRepository struct {
	migrated bool
	players  []player.Player
}

func (r *recordingRepository) Migrate(context.Context) error {
	r.migrated = true
	return nil
}

func (r *recordingRepository) ReplaceAll(_ context.Context, players []player.Player) (int, error) {
	r.players = players
	return len(players), nil
}

func (r *recordingRepository) Count(context.Context) (int64, error) {
	return int64(len(r.players)), nil
}

func TestMirrorPlayersIncludesPlaceholders(t *testing.T) {
	_, dir := fixture(t)
	repo := &recordingRepository{}

	n, err := mirrorPlayers(context.Background(), repo, dir)
	require.NoError(t, err)
	assert.True(t, repo.migrated)
	assert.Equal(t, len(dir.All()), n)
	assert.Greater(t, len(dir.All()), len(dir.Selectable()))
}

type stubPinger struct {
	now time.Time
	err error
}

func (s stubPinger) Now(context.Context) (time.Time, error) { return s.now, s.err }

func TestBeat(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, beat(context.Background(), &out, stubPinger{now: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}))
	assert.Equal(t, "database time: 2025-01-02T03:04:05Z\n", out.String())

	assert.Error(t, beat(context.Background(), &out, stubPinger{err: errors.New("down")}))
}
