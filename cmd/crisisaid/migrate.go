package main

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/cmd/config"
	migration "github.com/DurjoyKumar177/CrisisAid-Backend/cmd/database/migrate"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create or update the database schema",
	Action: func(cCtx *cli.Context) error {
		cfg, err := utils.LoadConfig(cCtx.String("config"))
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		if err := migration.Migrate(db); err != nil {
			return err
		}

		newLogger(cfg.LogLevel).Info("database migrated")
		return nil
	},
}
