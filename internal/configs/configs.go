package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"

	DefaultConfigFile = "taskdesk.toml"
)

type Config struct {
	APIURL                 string `toml:"api_url"`
	TokenStore             string `toml:"token_store"`
	DatabaseDSN            string `toml:"database_dsn"`
	RedisAddr              string `toml:"redis_addr"`
	RedisKeyPrefix         string `toml:"redis_key_prefix"`
	LogLevel               string `toml:"log_level"`
	StubAddr               string `toml:"stub_addr"`
	StubDatabaseDSN        string `toml:"stub_database_dsn"`
	StubSecret             string `toml:"stub_secret"`
	AuthRateLimit          int    `toml:"auth_rate_limit_per_minute"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

func Default() Config {
	return Config{
		APIURL:                 "http://localhost:8080/api",
		TokenStore:             TokenStoreSQLite,
		DatabaseDSN:            "taskdesk.db",
		RedisAddr:              "127.0.0.1:6379",
		RedisKeyPrefix:         "taskdesk:",
		LogLevel:               "info",
		StubAddr:               "127.0.0.1:8080",
		StubDatabaseDSN:        "file:taskdesk-stub?mode=memory&cache=shared",
		StubSecret:             "taskdesk-dev-secret",
		AuthRateLimit:          10,
		ShutdownTimeoutSeconds: 20,
	}
}

// Load layers the optional TOML file over the defaults, then the
// environment over both.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("TASKDESK_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.APIURL = getEnv("TASKDESK_API_URL", cfg.APIURL)
	cfg.TokenStore = getEnv("TASKDESK_TOKEN_STORE", cfg.TokenStore)
	cfg.DatabaseDSN = getEnv("TASKDESK_DATABASE_DSN", cfg.DatabaseDSN)
	cfg.RedisKeyPrefix = getEnv("TASKDESK_REDIS_PREFIX", cfg.RedisKeyPrefix)
	cfg.LogLevel = getEnv("TASKDESK_LOG_LEVEL", cfg.LogLevel)
	cfg.StubDatabaseDSN = getEnv("TASKDESK_STUB_DATABASE_DSN", cfg.StubDatabaseDSN)
	cfg.StubSecret = getEnv("TASKDESK_STUB_SECRET", cfg.StubSecret)

	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" || port != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "127.0.0.1"), getEnv("REDIS_PORT", "6379"))
	}
	if host, port := os.Getenv("TASKDESK_STUB_HOST"), os.Getenv("TASKDESK_STUB_PORT"); host != "" || port != "" {
		cfg.StubAddr = fmt.Sprintf("%s:%s", getEnv("TASKDESK_STUB_HOST", "127.0.0.1"), getEnv("TASKDESK_STUB_PORT", "8080"))
	}

	var err error
	if cfg.AuthRateLimit, err = getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", cfg.AuthRateLimit); err != nil {
		return err
	}
	if cfg.ShutdownTimeoutSeconds, err = getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.ShutdownTimeoutSeconds); err != nil {
		return err
	}
	return nil
}

func (cfg Config) Validate() error {
	if u, err := url.Parse(cfg.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TASKDESK_API_URL must be an absolute URL (e.g. http://localhost:8080/api)")
	}
	switch cfg.TokenStore {
	case TokenStoreSQLite:
		if cfg.DatabaseDSN == "" {
			return errors.New("TASKDESK_DATABASE_DSN must not be empty")
		}
	case TokenStoreRedis:
		if cfg.RedisAddr == "" {
			return errors.New("REDIS_HOST must not be empty")
		}
	case TokenStoreMemory:
	default:
		return fmt.Errorf("TASKDESK_TOKEN_STORE must be one of sqlite, redis, memory (got %q)", cfg.TokenStore)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.StubSecret == "" {
		return errors.New("TASKDESK_STUB_SECRET must not be empty")
	}
	if cfg.AuthRateLimit <= 0 {
		return errors.New("AUTH_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}
