package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/heartbeat"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/internal/team"
)

func loadDirectory(dataDir string) (*player.Directory, error) {
	return player.LoadDirectory(
		filepath.Join(dataDir, "players.json"),
		filepath.Join(dataDir, "jp_names.json"),
	)
}

func writeFormations(w io.Writer, catalog *formation.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog.List()); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

// encodeShare reads a team file and returns its share token.
func encodeShare(catalog *formation.Catalog, dir *player.Directory, doc []byte) (string, error) {
	e := team.NewEngine(catalog, dir)
	if err := e.ImportDocument(doc); err != nil {
		return "", err
	}
	return team.EncodeShareToken(e.State())
}

// decodeShare writes the team file carried by token.
func decodeShare(w io.Writer, catalog *formation.Catalog, dir *player.Directory, token string) error {
	e := team.NewEngine(catalog, dir)
	if err := e.ApplyShareToken(token); err != nil {
		return err
	}
	out, err := team.ExportDocument(e.State())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func mirrorPlayers(ctx context.Context, repo player.PlayerRepository, dir *player.Directory) (int, error) {
	if err := repo.Migrate(ctx); err != nil {
		return 0, fmt.Errorf("migrate players table: %w", err)
	}
	return repo.ReplaceAll(ctx, dir.All())
}

func beat(ctx context.Context, w io.Writer, pinger heartbeat.Pinger) error {
	now, err := pinger.Now(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "database time: %s\n", now.Format("2006-01-02T15:04:05Z07:00"))
	return err
}

func openOutput(location string) (io.WriteCloser, error) {
	if location == stdoutCLIName {
		return nopCloser{os.Stdout}, nil
	}
	return os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
