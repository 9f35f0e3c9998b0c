package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"turfbook/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection splits reads and writes. Anything that must observe its own
// writes, like the booking arbiter, goes through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Connect("read", DSN(pg.Prefix, pg.Read, nil), pg.MaxRetry, pg.RetryWaitTime),
		Write: Connect("write", DSN(pg.Prefix, pg.Write, nil), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Read == nil || c.Write == nil {
		return errors.New("postgres connection not established")
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("ping write pool: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("ping read pool: %w", err)
	}

	return nil
}

// DSN renders an endpoint as a postgres URL. The database name gets the
// environment prefix; extra is merged into the query string.
func DSN(prefix string, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect retries until the database answers or maxRetry attempts are spent,
// in which case it returns nil.
func Connect(name, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().Str("name", name).Logger()

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Error().Int("attempts", maxRetry).Msg("Giving up connecting to database")

	return nil
}
