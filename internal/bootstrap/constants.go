package bootstrap

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Session log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// Startup
const (
	LogMsgStartingService         = "Starting prediction contest service"
	LogMsgConfigurationLoaded     = "Configuration loaded"
	LogMsgEventSystemReady        = "Event system ready"
	LogMsgStorageInitialized      = "Storage initialized"
	LogMsgMigrationsApplied       = "Database migrations applied"
	LogMsgCacheInitialized        = "Leaderboard cache initialized"
	LogMsgContestsSeeded          = "Contest definitions seeded"
	LogMsgFailedDeleteOldLog      = "Failed to delete old session log"
	LogMsgMetricsRegistered       = "Event metrics subscribed"
	LogMsgAuditTrailSubscribed    = "Audit trail subscribed"
	LogMsgLeaderboardSubscribed   = "Leaderboard cache invalidation subscribed"
	LogMsgContestWorkerSubscribed = "Contest worker subscribed"
)

const (
	ErrMsgCreateLogsDir       = "failed to create logs directory"
	ErrMsgOpenLogFile         = "failed to open session log"
	ErrMsgCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgCreatePublisher     = "failed to start event publisher"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedRunMigrations = "failed to run migrations"
	ErrMsgFailedConnectRedis  = "failed to connect to redis"
	ErrMsgUnknownStorage      = "unknown storage backend"
	ErrMsgUnknownCache        = "unknown cache backend"
	ErrMsgFailedSeedContests  = "failed to seed contests"
	ErrMsgFailedCloseRedis    = "failed to close redis client"
	ErrMsgRegisterMetrics     = "failed to subscribe event metrics"
	ErrMsgSubscribeAuditTrail = "failed to subscribe audit trail"
)

// Shutdown
const (
	ServiceNameContestWorker      = "contest worker"
	LogMsgShuttingDown            = "Shutting down"
	LogMsgDrainingEvents          = "Draining event publisher"
	LogMsgStopped                 = "Stopped"
	LogMsgServerForcedShutdown    = "Server forced to shut down"
	LogMsgPublisherShutdownFailed = "Event publisher shutdown failed"
	LogMsgServiceShutdownFailed   = " shutdown failed"
)
