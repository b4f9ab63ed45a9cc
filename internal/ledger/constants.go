package ledger

// Confidence bounds, inclusive
const (
	MinConfidence = 0
	MaxConfidence = 100
)

// Error context messages
const (
	ErrContextFailedToGetQuestion    = "failed to get question"
	ErrContextFailedToGetContest     = "failed to get contest"
	ErrContextFailedToGetSubmission  = "failed to get existing submission"
	ErrContextFailedToBeginTx        = "failed to begin transaction"
	ErrContextFailedToSaveSubmission = "failed to save submission"
	ErrContextFailedToJoinContest    = "failed to record participant"
	ErrContextFailedToCommitTx       = "failed to commit transaction"
	ErrContextFailedToGetHistory     = "failed to get submission history"
)

// Log messages
const (
	LogMsgSubmitCalled       = "Submit called"
	LogMsgSubmissionAccepted = "Submission accepted"
	LogMsgSubmissionRejected = "Submission rejected"
	LogMsgLateEntryAccepted  = "Late entry accepted"
)
