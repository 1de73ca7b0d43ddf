package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName      = "postgres"
	maxIdleConns    = 10
	maxOpenConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// Connection holds the read pool used by queries and the write pool used by commands and transactions.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

var errNotConnected = errors.New("database connection is not established")

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: pg.MaxRetry, wait: time.Duration(pg.RetryWaitTime) * time.Second}

	conn := &Connection{
		Read:  connect("read", DSN(cfg, pg.Read, nil), retry),
		Write: connect("write", DSN(cfg, pg.Write, nil), retry),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("attempts", retry.attempts).Msg("Failed to connect to database after all retries")
	}

	return conn
}

// DSN builds a postgres:// URL for db. The configured prefix is prepended to the database name
// and extra is merged into the query string.
func DSN(cfg *config.Config, db config.Database, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", db.SSLMode)

	if db.Timezone != "" {
		query.Set("timezone", db.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(db.Username, db.Password),
		Host:     net.JoinHostPort(db.Host, db.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + db.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			return fmt.Errorf("%s: %w", name, errNotConnected)
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping %s database: %w", name, err)
		}
	}

	return nil
}

func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

// connect opens a pool, retrying while the database is still starting. It returns nil once attempts run out.
func connect(name, dsn string, retry retryPolicy) *sqlx.DB {
	attempts := max(retry.attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConns)
			db.SetMaxOpenConns(maxOpenConns)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().Str("pool", name).Int("attempt", attempt).Msg("Connected to database")

			return db
		}

		log.Error().Err(err).Str("pool", name).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < attempts {
			time.Sleep(retry.wait)
		}
	}

	return nil
}
