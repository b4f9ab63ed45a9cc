package streak

// Error context messages
const (
	ErrContextFailedToLoadStreaks = "failed to load streaks"
)
