package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "question.resolved")
const (
	// EventTypeContestCreated is published when a contest configuration is accepted
	EventTypeContestCreated = "contest.created"

	// EventTypeContestStateChanged is published after every lifecycle transition
	EventTypeContestStateChanged = "contest.state_changed"

	// EventTypeContestFinalized is published once the result snapshot is committed
	EventTypeContestFinalized = "contest.finalized"

	// EventTypePredictionSubmitted is published when a submission is created or replaced
	EventTypePredictionSubmitted = "prediction.submitted"

	// EventTypeQuestionResolved is published when a game result resolves a question
	EventTypeQuestionResolved = "question.resolved"

	// EventTypeQuestionScored is published after the scoring pass processes a question
	EventTypeQuestionScored = "question.scored"
)
