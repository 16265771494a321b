// Command seed fills the database with people, planets and users.
//
//	seed                         # embedded default dataset
//	seed --file data/seed.toml   # YAML, TOML or JSON by extension
//
// The database is chosen the same way as for the server (DATABASE_URL, then
// DB_PATH), and --database-url overrides both.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &cli.Command{
		Name:  "seed",
		Usage: "Load people, planets and users into the Star Wars API database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Dataset file (.yaml, .yml, .toml or .json); the embedded dataset when empty",
			},
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "postgres://, mysql://, sqlite:// URL or SQLite file path",
				Value: cfg.DatabaseTarget(),
			},
			&cli.IntFlag{
				Name:    "bcrypt-cost",
				Usage:   "bcrypt cost for plaintext passwords",
				Value:   auth.DefaultCost,
				Sources: cli.EnvVars("BCRYPT_COST"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Validate the dataset without touching the database",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, cfg)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		config.NewLogger(nil, cfg.LogLevel, cfg.LogFormat).Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command, cfg config.Config) error {
	logger := config.NewLogger(nil, cfg.LogLevel, cfg.LogFormat)

	var (
		ds  *seed.Dataset
		err error
	)
	if file := cmd.String("file"); file != "" {
		ds, err = seed.Load(file)
	} else {
		ds, err = seed.Default()
	}
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		logger.Info("dataset is valid",
			"users", len(ds.Users),
			"planets", len(ds.Planets),
			"people", len(ds.People),
		)
		return nil
	}

	passwords, err := auth.NewPasswordService(int(cmd.Int("bcrypt-cost")))
	if err != nil {
		return err
	}

	target := cmd.String("database-url")
	if target == cfg.DBPath {
		if err := cfg.EnsureDataDir(); err != nil {
			return err
		}
	}

	db, err := sqlstore.Open(ctx, target)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = seed.Apply(ctx, db, ds, passwords, logger)
	return err
}
