package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
	ActionSeed   = "seed"

	migrationSource = "file://migrations/postgres"
)

var errUnknownAction = errors.New("invalid action, use up, down, drop, step-up or seed")

type migration struct {
	run  func(*migrate.Migrate) error
	done string
}

var migrations = map[string]migration{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "Database migrations applied"},
	ActionStepUp: {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Applied one migration"},
	ActionDown:   {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Rolled back one migration"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "All migrations rolled back"},
}

// Runner applies one migration action against the write database. No pending change is not an error.
func Runner(cfg *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownAction, action)
	}

	dsn := postgres.DSN(cfg, cfg.DB.Postgres.Write, url.Values{"x-migrations-table": {cfg.DB.Postgres.MigrationTable}})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, _ := mig.Version()
	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg(step.done)

	return nil
}
