package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"storefront/pkg/cart/infrastructure/repository"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "apply the MySQL snapshot schema",
		Action: executeMigrate,
	}
}

func executeMigrate(_ *cli.Context) error {
	c, err := parseEnv()
	if err != nil {
		return err
	}
	setupLogging(c)

	if c.SnapshotDriver != snapshotDriverMySQL {
		return errors.Errorf("migrate needs the mysql snapshot driver, got %q", c.SnapshotDriver)
	}
	return repository.Migrate(c.MySQLDSN)
}
