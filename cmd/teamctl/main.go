package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/miximax/miximax/config"
	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/heartbeat"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/internal/team"
)

const (
	dataDirFlag   = "data-dir"
	outputFlag    = "output"
	fileFlag      = "file"
	tokenFlag     = "token"
	baseURLFlag   = "base-url"
	stdoutCLIName = "-"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	dataDir := &cli.StringFlag{
		Name:    dataDirFlag,
		Usage:   "Directory holding players.json and jp_names.json",
		Value:   "./data",
		EnvVars: []string{"DATA_DIR"},
	}

	app := &cli.App{
		Name:    "teamctl",
		Usage:   "Maintenance tasks for the team builder",
		Version: semanticVersion,
		Commands: []*cli.Command{
			{
				Name:  "formations",
				Usage: "Print the formation catalog as YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "The location to write the YAML result. Can be a file path or \"-\" (for stdout).",
						Value:   stdoutCLIName,
					},
				},
				Action: func(cCtx *cli.Context) error {
					catalog, err := formation.Builtin()
					if err != nil {
						return err
					}
					w, err := openOutput(cCtx.String(outputFlag))
					if err != nil {
						return err
					}
					defer w.Close()
					return writeFormations(w, catalog)
				},
			},
			{
				Name:  "mirror",
				Usage: "Replace the players table with the dataset",
				Flags: []cli.Flag{dataDir},
				Action: func(cCtx *cli.Context) error {
					if err := config.Initialize(); err != nil {
						return err
					}
					if config.DB == nil {
						return fmt.Errorf("database unavailable, check DB_ENABLED and the DB_* settings")
					}
					dir, err := loadDirectory(cCtx.String(dataDirFlag))
					if err != nil {
						return err
					}
					n, err := mirrorPlayers(cCtx.Context, player.NewPlayerRepository(config.DB), dir)
					if err != nil {
						return err
					}
					config.Log.Info("Players mirrored", zap.Int("rows", n), zap.Int("batch_size", player.MirrorBatchSize))
					return nil
				},
			},
			{
				Name:  "heartbeat",
				Usage: "Run the database heartbeat once",
				Action: func(cCtx *cli.Context) error {
					if err := config.Initialize(); err != nil {
						return err
					}
					ctx, cancel := context.WithTimeout(cCtx.Context, heartbeat.PingTimeout)
					defer cancel()
					return beat(ctx, os.Stdout, heartbeat.NewHeartbeatRepository(config.DB))
				},
			},
			{
				Name:  "share",
				Usage: "Convert between team files and share tokens",
				Subcommands: []*cli.Command{
					{
						Name:  "encode",
						Usage: "Print the share token and link of a team file",
						Flags: []cli.Flag{
							dataDir,
							&cli.StringFlag{Name: fileFlag, Aliases: []string{"f"}, Usage: "Team file to encode", Required: true},
							&cli.StringFlag{Name: baseURLFlag, Usage: "Front end base URL", Value: "http://localhost:3000", EnvVars: []string{"FRONTEND_URL"}},
						},
						Action: func(cCtx *cli.Context) error {
							catalog, dir, err := loadCatalogAndDirectory(cCtx.String(dataDirFlag))
							if err != nil {
								return err
							}
							doc, err := os.ReadFile(cCtx.String(fileFlag))
							if err != nil {
								return err
							}
							token, err := encodeShare(catalog, dir, doc)
							if err != nil {
								return err
							}
							fmt.Println(token)
							fmt.Println(team.ShareURL(cCtx.String(baseURLFlag), token))
							return nil
						},
					},
					{
						Name:  "decode",
						Usage: "Print the team file carried by a share token",
						Flags: []cli.Flag{
							dataDir,
							&cli.StringFlag{Name: tokenFlag, Aliases: []string{"t"}, Usage: "Share token", Required: true},
						},
						Action: func(cCtx *cli.Context) error {
							catalog, dir, err := loadCatalogAndDirectory(cCtx.String(dataDirFlag))
							if err != nil {
								return err
							}
							return decodeShare(os.Stdout, catalog, dir, cCtx.String(tokenFlag))
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadCatalogAndDirectory(dataDir string) (*formation.Catalog, *player.Directory, error) {
	catalog, err := formation.Builtin()
	if err != nil {
		return nil, nil, err
	}
	dir, err := loadDirectory(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return catalog, dir, nil
}
