package redis

import (
	"context"

	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/pkg/apperror"

	"github.com/rs/zerolog"
)

const pong = "PONG"

// HealthCheck implements ports.Checker for a Redis-compatible cache.
type HealthCheck struct {
	cfg  config.CacheConfig
	dial Dialer
	log  zerolog.Logger
}

// NewHealthCheck creates a cache checker dialing with go-redis.
func NewHealthCheck(cfg config.CacheConfig, log zerolog.Logger) *HealthCheck {
	return NewHealthCheckWithDialer(cfg, Open, log)
}

// NewHealthCheckWithDialer creates a cache checker using dial to build the client.
func NewHealthCheckWithDialer(cfg config.CacheConfig, dial Dialer, log zerolog.Logger) *HealthCheck {
	return &HealthCheck{cfg: cfg, dial: dial, log: log}
}

// Name returns the check name.
func (h *HealthCheck) Name() domain.CheckName {
	return domain.CheckCache
}

// Check sends PING over TLS and expects PONG.
func (h *HealthCheck) Check(ctx context.Context) domain.Result {
	if missing := h.cfg.Missing(); len(missing) > 0 {
		return domain.Failure(h.Name(), apperror.ErrMissingConfig(missing...))
	}

	h.log.Debug().
		Str("host", h.cfg.Host()).
		Int("port", config.CacheTLSPort).
		Msg("pinging cache")

	client, err := h.dial(h.cfg.RedisURL())
	if err != nil {
		return domain.Failure(h.Name(), apperror.ErrInvalidConfig(err))
	}
	defer func() {
		if err := client.Close(); err != nil {
			h.log.Warn().Err(err).Msg("closing cache client")
		}
	}()

	reply, err := client.Ping(ctx).Result()
	if err != nil {
		return domain.Failure(h.Name(), apperror.ErrConnection(err))
	}
	if reply != pong {
		return domain.Failure(h.Name(), apperror.ErrUnexpectedReply("PING did not return PONG"))
	}

	return domain.Success(h.Name(), "PING returned PONG.")
}
