package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

// ErrInvalidURL reports a connection URL go-redis cannot parse.
var ErrInvalidURL = errors.New("invalid redis url")

// Pinger is the subset of *goredis.Client used by the cache check.
type Pinger interface {
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Dialer builds a client for a redis:// or rediss:// URL.
type Dialer func(redisURL string) (Pinger, error)

// Open creates a Redis client from a connection URL.
// rediss:// enables TLS. The client connects lazily on the first command.
// Parse errors never carry the URL's credentials.
func Open(redisURL string) (Pinger, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			// url.Error quotes the raw URL and fragments of the password.
			return nil, fmt.Errorf("%w: %s", ErrInvalidURL, redact(redisURL))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return goredis.NewClient(opts), nil
}

// redact masks the userinfo of a connection URL, even one url.Parse rejects.
func redact(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return u.Redacted()
	}
	scheme := strings.Index(raw, "://")
	at := strings.LastIndex(raw, "@")
	if scheme < 0 || at < scheme {
		return "<unparseable>"
	}
	return raw[:scheme+3] + "xxxxx" + raw[at:]
}
