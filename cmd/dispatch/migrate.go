package main

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/migrations"
	"github.com/driftline/dispatch/pkg/config"
)

const docMigrate = `Apply database schema migrations`

type optsMigrate struct {
	DatabaseURL string `long:"database-url" description:"Database connection string"`
	Down        bool   `long:"down" description:"Roll back one migration instead of applying all"`
}

func (c *optsMigrate) Execute(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.DatabaseURL != "" {
		cfg.DatabaseURL = c.DatabaseURL
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if c.Down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err == migrate.ErrNoChange {
		log.Info().Msg("no schema changes to apply")
		return nil
	}
	if err == nil {
		log.Info().Msg("schema migrations applied")
	}
	return err
}
