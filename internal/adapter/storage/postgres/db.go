package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidURL is returned by Connect when the connection string cannot be parsed.
var ErrInvalidURL = errors.New("invalid database url")

// Conn is the subset of *pgx.Conn used by the database check.
type Conn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close(ctx context.Context) error
}

// Connector opens a single connection for the given URL.
type Connector func(ctx context.Context, connString string) (Conn, error)

// Connect opens one short-lived PostgreSQL connection using pgx.
// No pool: the check acquires and releases its own connection.
func Connect(ctx context.Context, connString string) (Conn, error) {
	connCfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return conn, nil
}

// redact hides the password of a connection URL for logging.
func redact(connString string) string {
	u, err := url.Parse(connString)
	if err != nil || u.Host == "" {
		return "<unparseable>"
	}
	return u.Redacted()
}
