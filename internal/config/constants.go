package config

import "time"

// Storage and cache backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	CacheBackendLRU   = "lru"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "prediction-contest"
	DefaultVersion     = "dev"
	DefaultDBName      = "predictioncontest"
	DefaultDBUser      = "postgres"
	DefaultDBPassword  = "postgres"
	DefaultDBHost      = "localhost"
	DefaultDBPort      = "5432"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultLeaderboardCacheSize = 256
	DefaultLeaderboardCacheTTL  = 30 * time.Second
	DefaultRedisAddr            = "localhost:6379"

	DefaultSweepInterval   = 30 * time.Second
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second
	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
)

// Error messages
const (
	ErrMsgInvalidConfig = "invalid configuration"
	ErrMsgMissingAPIKey = "API_KEY environment variable must be set for security"
	ErrMsgInvalidValue  = "invalid %s %q: %w"
)
