package postgres

import (
	"context"
	"errors"
	"fmt"

	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const versionQuery = "SELECT version();"

// HealthCheck implements ports.Checker for a Postgres-compatible database.
type HealthCheck struct {
	cfg     config.DatabaseConfig
	connect Connector
	log     zerolog.Logger
}

// NewHealthCheck creates a database checker dialing with pgx.
func NewHealthCheck(cfg config.DatabaseConfig, log zerolog.Logger) *HealthCheck {
	return NewHealthCheckWithConnector(cfg, Connect, log)
}

// NewHealthCheckWithConnector creates a database checker using connect to dial.
func NewHealthCheckWithConnector(cfg config.DatabaseConfig, connect Connector, log zerolog.Logger) *HealthCheck {
	return &HealthCheck{cfg: cfg, connect: connect, log: log}
}

// Name returns the check name.
func (h *HealthCheck) Name() domain.CheckName {
	return domain.CheckDatabase
}

// Check opens a connection, fetches the server version and closes the connection.
func (h *HealthCheck) Check(ctx context.Context) domain.Result {
	if missing := h.cfg.Missing(); len(missing) > 0 {
		return domain.Failure(h.Name(), apperror.ErrMissingConfig(missing...))
	}

	h.log.Debug().Str("target", redact(h.cfg.URL)).Msg("connecting to database")

	conn, err := h.connect(ctx, h.cfg.URL)
	if err != nil {
		return domain.Failure(h.Name(), classify(err))
	}
	defer func() {
		// Close even when ctx is already done.
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			h.log.Warn().Err(err).Msg("closing database connection")
		}
	}()

	var version string
	if err := conn.QueryRow(ctx, versionQuery).Scan(&version); err != nil {
		return domain.Failure(h.Name(), classify(fmt.Errorf("querying version: %w", err)))
	}
	if version == "" {
		return domain.Failure(h.Name(), apperror.ErrUnexpectedReply("server returned an empty version string"))
	}

	return domain.Success(h.Name(), "PostgreSQL version: "+version)
}

// classify maps pgx errors: an unparseable URL is a config error, a server
// error response a service API error, anything else a connection error.
func classify(err error) *apperror.AppError {
	if errors.Is(err, ErrInvalidURL) {
		return apperror.ErrInvalidConfig(err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.ErrServiceAPI(pgErr.Code, err)
	}
	return apperror.ErrConnection(err)
}
