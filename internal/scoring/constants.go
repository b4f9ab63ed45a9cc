package scoring

// Error context messages
const (
	ErrContextFailedToLoadSubmissions = "failed to load submissions"
	ErrContextFailedToLoadStreaks     = "failed to load streaks"
	ErrContextFailedToSaveScore       = "failed to save score"
	ErrContextFailedToSaveStreaks     = "failed to save streaks"
	ErrContextFailedToMarkScored      = "failed to mark question scored"
)

// Log messages
const (
	LogMsgQuestionScored      = "Question scored"
	LogMsgSubmissionSkipped   = "Submission already scored, skipping"
	LogMsgQuestionAlreadyDone = "Question already scored, skipping"
)

// percentDivisor converts a 0-100 confidence to a factor
const percentDivisor = 100
