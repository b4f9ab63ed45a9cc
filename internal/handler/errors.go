package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidContestID      = "Invalid contest ID"
	ErrMsgInvalidContestState   = "Invalid contest state filter"
	ErrMsgInvalidParticipantID  = "Invalid participant ID"
)

// Success and status messages for API responses
const (
	MsgContestCancelled = "Contest cancelled"
	MsgResultPending    = "pending"
	MsgResultCancelled  = "cancelled"
)

// Operation names used in logs
const (
	OpCreateContest    = "Create contest"
	OpListContests     = "List contests"
	OpGetContest       = "Get contest"
	OpCancelContest    = "Cancel contest"
	OpResolveQuestion  = "Resolve question"
	OpSubmitPrediction = "Submit prediction"
	OpGetLeaderboard   = "Get leaderboard"
	OpGetResult        = "Get contest result"
	OpGetHistory       = "Get participant history"
	OpGetEvents        = "Get contest events"
)

// Query parameter and route parameter names
const (
	ParamContestID     = "id"
	ParamParticipantID = "participantID"
	QueryState         = "state"
	QueryLimit         = "limit"
)

// Limits
const (
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)
