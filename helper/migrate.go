package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"turfbook/config"
	"turfbook/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type MigrationAction string

const (
	MigrationUp      MigrationAction = "up"
	MigrationDown    MigrationAction = "down"
	MigrationStepUp  MigrationAction = "step-up"
	MigrationDrop    MigrationAction = "drop"
	MigrationVersion MigrationAction = "version"
)

var ErrUnknownMigrationAction = errors.New("unknown migration action")

var migrationSteps = map[MigrationAction]func(*migrate.Migrate) error{
	MigrationUp:     (*migrate.Migrate).Up,
	MigrationDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	MigrationStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	MigrationDrop:   (*migrate.Migrate).Down,
	MigrationVersion: func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("No migration applied yet")

			return nil
		}

		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
}

// ConnectionString builds the migrate DSN for the write pool, with the
// configured migration table.
func ConnectionString(cfg *config.Config) string {
	extra := url.Values{}

	if cfg.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(cfg.DB.Postgres.Prefix, cfg.DB.Postgres.Write, extra)
}

func Runner(cfg *config.Config, action MigrationAction) error {
	step, ok := migrationSteps[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMigrationAction, action)
	}

	mig, err := migrate.New(migrationSource, ConnectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, MigrationUp)
}
