package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"gt=0"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	RunMigrations     bool

	StorageBackend string `validate:"oneof=postgres memory"`
	CacheBackend   string `validate:"oneof=lru redis none"`

	LeaderboardCacheSize int           `validate:"gte=0"`
	LeaderboardCacheTTL  time.Duration `validate:"gte=0"`

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	SweepInterval       time.Duration `validate:"gt=0"`
	ContestsDir         string
	EventMaxRetries     int `validate:"gte=0"`
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
	TrustedProxies      []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	return load(true)
}

// LoadForTools loads the configuration for offline tooling, which never
// serves HTTP and so does not need API_KEY
func LoadForTools() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	// A missing .env is fine; real environment variables win either way
	_ = godotenv.Load()

	env := &envReader{lookup: os.LookupEnv}
	cfg := &Config{
		Port:        envValue(env, "PORT", DefaultPort, strconv.Atoi),
		APIKey:      env.str("API_KEY", ""),
		LogLevel:    env.str("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   strings.ToLower(env.str("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      env.str("LOG_DIR", DefaultLogDir),
		Environment: env.str("ENVIRONMENT", DefaultEnvironment),
		ServiceName: env.str("SERVICE_NAME", DefaultServiceName),
		Version:     env.str("VERSION", DefaultVersion),

		DBUser:            env.str("DB_USER", DefaultDBUser),
		DBPassword:        env.str("DB_PASSWORD", DefaultDBPassword),
		DBHost:            env.str("DB_HOST", DefaultDBHost),
		DBPort:            env.str("DB_PORT", DefaultDBPort),
		DBName:            env.str("DB_NAME", DefaultDBName),
		DBMaxConns:        envValue(env, "DB_MAX_CONNS", DefaultDBMaxConns, strconv.Atoi),
		DBMaxConnIdleTime: envValue(env, "DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime, time.ParseDuration),
		DBMaxConnLifetime: envValue(env, "DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime, time.ParseDuration),
		RunMigrations:     envValue(env, "RUN_MIGRATIONS", true, strconv.ParseBool),

		StorageBackend: strings.ToLower(env.str("STORAGE_BACKEND", StorageBackendPostgres)),
		CacheBackend:   strings.ToLower(env.str("CACHE_BACKEND", CacheBackendLRU)),

		LeaderboardCacheSize: envValue(env, "LEADERBOARD_CACHE_SIZE", DefaultLeaderboardCacheSize, strconv.Atoi),
		LeaderboardCacheTTL:  envValue(env, "LEADERBOARD_CACHE_TTL", DefaultLeaderboardCacheTTL, time.ParseDuration),

		RedisAddr:     env.str("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: env.str("REDIS_PASSWORD", ""),
		RedisDB:       envValue(env, "REDIS_DB", 0, strconv.Atoi),

		SweepInterval:       envValue(env, "SWEEP_INTERVAL", DefaultSweepInterval, time.ParseDuration),
		ContestsDir:         env.str("CONTESTS_DIR", ""),
		EventMaxRetries:     envValue(env, "EVENT_MAX_RETRIES", DefaultEventMaxRetries, strconv.Atoi),
		EventRetryDelay:     envValue(env, "EVENT_RETRY_DELAY", DefaultEventRetryDelay, time.ParseDuration),
		EventDeadLetterPath: env.str("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		TrustedProxies:      env.list("TRUSTED_PROXIES"),
	}

	if err := env.err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	if requireAPIKey && cfg.APIKey == "" {
		return nil, errors.New(ErrMsgMissingAPIKey)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	return cfg, nil
}

// envReader reads settings and collects every value that failed to parse
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

// raw returns the trimmed value of key; blank counts as unset
func (r *envReader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return fallback
}

// list splits a comma-separated value, dropping empty items
func (r *envReader) list(key string) []string {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

// envValue parses key with parse, returning fallback when it is unset or invalid
func envValue[T any](r *envReader, key string, fallback T, parse func(string) (T, error)) T {
	v, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := parse(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf(ErrMsgInvalidValue, key, v, err))
		return fallback
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection URL with credentials escaped
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
