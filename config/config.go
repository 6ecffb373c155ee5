package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CacheTLSPort is the port Upstash exposes for TLS Redis connections.
const CacheTLSPort = 6379

// Config holds all application configuration.
// The service credentials are flat keys named after their environment
// variables so a dotenv file and the process environment line up.
type Config struct {
	Database    DatabaseConfig    `mapstructure:",squash"`
	ObjectStore ObjectStoreConfig `mapstructure:",squash"`
	Cache       CacheConfig       `mapstructure:",squash"`
	Check       CheckConfig       `mapstructure:"check"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"neon_database_url"`
}

// Missing returns the names of unset database variables.
func (d DatabaseConfig) Missing() []string {
	return missing(map[string]string{
		"NEON_DATABASE_URL": d.URL,
	})
}

type ObjectStoreConfig struct {
	AccessKeyID     string `mapstructure:"r2_access_key_id"`
	SecretAccessKey string `mapstructure:"r2_secret_access_key"`
	BucketName      string `mapstructure:"r2_bucket_name"`
	AccountID       string `mapstructure:"r2_account_id"`
}

// Missing returns the names of unset object store variables.
func (o ObjectStoreConfig) Missing() []string {
	return missing(map[string]string{
		"R2_ACCESS_KEY_ID":     o.AccessKeyID,
		"R2_SECRET_ACCESS_KEY": o.SecretAccessKey,
		"R2_BUCKET_NAME":       o.BucketName,
		"R2_ACCOUNT_ID":        o.AccountID,
	})
}

// Endpoint returns the account-scoped R2 S3 endpoint.
func (o ObjectStoreConfig) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", o.AccountID)
}

type CacheConfig struct {
	RESTToken string `mapstructure:"upstash_redis_rest_token"`
	RESTURL   string `mapstructure:"upstash_redis_rest_url"`
}

// Missing returns the names of unset cache variables.
func (c CacheConfig) Missing() []string {
	return missing(map[string]string{
		"UPSTASH_REDIS_REST_TOKEN": c.RESTToken,
		"UPSTASH_REDIS_REST_URL":   c.RESTURL,
	})
}

// Host strips the scheme and trailing slashes from the REST URL.
func (c CacheConfig) Host() string {
	host := strings.TrimPrefix(c.RESTURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

// RedisURL returns the TLS Redis URL for the REST endpoint, with the
// REST token used as the password: rediss://:<token>@<host>:6379.
// The token is percent-escaped where userinfo requires it.
func (c CacheConfig) RedisURL() string {
	u := url.URL{
		Scheme: "rediss",
		User:   url.UserPassword("", c.RESTToken),
		Host:   net.JoinHostPort(c.Host(), strconv.Itoa(CacheTLSPort)),
	}
	return u.String()
}

type CheckConfig struct {
	Timeout time.Duration `mapstructure:"timeout"` // per check, 0 = client defaults
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address of the health server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output
}

// serviceEnv lists the service variables. They are read without prefix.
var serviceEnv = []string{
	"NEON_DATABASE_URL",
	"R2_ACCESS_KEY_ID",
	"R2_SECRET_ACCESS_KEY",
	"R2_BUCKET_NAME",
	"R2_ACCOUNT_ID",
	"UPSTASH_REDIS_REST_TOKEN",
	"UPSTASH_REDIS_REST_URL",
}

// ambientKeys are the settings that may also be given as CONNCHECK_ keys
// in the dotenv file, e.g. CONNCHECK_LOG_LEVEL for log.level.
var ambientKeys = []string{
	"check.timeout",
	"server.host",
	"server.port",
	"log.level",
	"log.pretty",
}

// Load reads configuration from an optional dotenv file and the process
// environment. Environment variables override file values.
// Ambient settings use the CONNCHECK_ prefix: CONNCHECK_LOG_LEVEL,
// CONNCHECK_CHECK_TIMEOUT, CONNCHECK_SERVER_PORT, etc.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	for _, name := range serviceEnv {
		v.SetDefault(strings.ToLower(name), "")
	}
	v.SetDefault("check.timeout", "10s")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", false)

	// Service variables: NEON_DATABASE_URL -> neon_database_url
	for _, name := range serviceEnv {
		if err := v.BindEnv(strings.ToLower(name), name); err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
	}

	// Ambient variables: CONNCHECK_LOG_LEVEL -> log.level
	keyReplacer := strings.NewReplacer(".", "_")
	v.SetEnvPrefix("CONNCHECK")
	v.SetEnvKeyReplacer(keyReplacer)
	v.AutomaticEnv()

	// Dotenv file (optional, env vars can suffice)
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading env file: %w", err)
			}
			// File entries rank below the environment, so they replace defaults.
			for _, key := range ambientKeys {
				fileKey := "conncheck_" + keyReplacer.Replace(key)
				if v.InConfig(fileKey) {
					v.SetDefault(key, v.Get(fileKey))
				}
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening env file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func missing(values map[string]string) []string {
	var out []string
	for _, name := range serviceEnv {
		val, ok := values[name]
		if ok && strings.TrimSpace(val) == "" {
			out = append(out, name)
		}
	}
	return out
}
