package leaderboard

// CacheSchemaVersion is bumped when LeaderboardEntry changes shape so stale
// cached boards are discarded
const CacheSchemaVersion = "1"

// Cache backend names used as metric labels
const (
	BackendLRU   = "lru"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Error context messages
const (
	ErrContextFailedToLoadContest      = "failed to load contest"
	ErrContextFailedToLoadParticipants = "failed to load participants"
	ErrContextFailedToLoadSubmissions  = "failed to load submissions"
	ErrContextFailedToLoadStreaks      = "failed to load streaks"
	ErrContextFailedToLoadResult       = "failed to load result"
)

// Log messages
const (
	LogMsgCacheReadFailed  = "Leaderboard cache read failed, recomputing"
	LogMsgCacheWriteFailed = "Leaderboard cache write failed"
	LogMsgCacheInvalidated = "Leaderboard cache invalidated"
	LogMsgInvalidateFailed = "Leaderboard cache invalidation failed"
	LogMsgEventMissingID   = "Event carried no usable contest id"
	LogMsgRecomputed       = "Leaderboard recomputed"
	LogMsgStaleRecompute   = "Leaderboard changed during recompute, not caching"
)
