package contest

// Error context messages
const (
	ErrContextFailedToGetContest     = "failed to get contest"
	ErrContextFailedToGetQuestion    = "failed to get question"
	ErrContextFailedToGetQuestions   = "failed to get questions"
	ErrContextFailedToCreateContest  = "failed to create contest"
	ErrContextFailedToListContests   = "failed to list contests"
	ErrContextFailedToListDue        = "failed to list due contests"
	ErrContextFailedToGetResult      = "failed to get contest result"
	ErrContextFailedToBeginTx        = "failed to begin transaction"
	ErrContextFailedToCommitTx       = "failed to commit transaction"
	ErrContextFailedToTransition     = "failed to transition contest state"
	ErrContextFailedToResolve        = "failed to resolve question"
	ErrContextFailedToVoidQuestions  = "failed to void open questions"
	ErrContextScoringPassFailed      = "scoring pass failed"
	ErrContextFailedToFinalize       = "failed to finalize contest"
	ErrContextFailedToBuildBoard     = "failed to build final leaderboard"
	ErrContextFailedToSaveResult     = "failed to save contest result"
	ErrContextFailedToLoadConfigFile = "failed to load contest file"
)

// Log messages
const (
	LogMsgContestCreated          = "Contest created"
	LogMsgContestTransitioned     = "Contest transitioned"
	LogMsgResolveCalled           = "Resolve called"
	LogMsgQuestionResolved        = "Question resolved"
	LogMsgDuplicateResolution     = "Duplicate resolution ignored"
	LogMsgResultIgnored           = "Game result ignored"
	LogMsgUnresolvedAtWindowClose = "Unresolved questions voided at window close"
	LogMsgScoringPassCompleted    = "Scoring pass completed"
	LogMsgScoringPassFailed       = "Scoring pass failed"
	LogMsgContestFinalized        = "Contest finalized"
	LogMsgPayoutSumMismatch       = "Payout sum mismatch, contest left in EVALUATING for manual reconciliation"
	LogMsgAdvanceDueFailed        = "Failed to advance due contest"
	LogMsgContestSeeded           = "Contest seeded from file"
	LogMsgContestSeedSkipped      = "Contest file already seeded, skipping"
	LogMsgFailedToPublishEvent    = "Failed to publish contest event"
)

// DefaultListLimit caps ListContests when the caller passes no limit
const DefaultListLimit = 100

// Contest definition file extensions
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)
