package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Submission errors
	ErrMsgDeadlinePassed     = "submission deadline has passed"
	ErrMsgInvalidConfidence  = "confidence must be between 0 and 100"
	ErrMsgSubmissionLocked   = "submission is locked"
	ErrMsgInvalidOption      = "choice is not an option for this question"
	ErrMsgContestNotOpen     = "contest is not open for submissions"
	ErrMsgContestCancelled   = "contest has been cancelled"
	ErrMsgParticipantMissing = "participant id is required"

	// Resolution errors
	ErrMsgDuplicateResolution             = "question already resolved"
	ErrMsgQuestionVoided                  = "question has been voided"
	ErrMsgUnresolvedQuestionAtWindowClose = "question unresolved at window close"

	// Evaluation errors
	ErrMsgNegativeScore     = "scoring produced a negative score"
	ErrMsgPayoutSumMismatch = "payout sum does not match prize pool total"
	ErrMsgInvalidTransition = "invalid contest state transition"
	ErrMsgResultPending     = "contest result is pending"
	ErrMsgAlreadyFinalized  = "contest already finalized"

	// Lookup errors
	ErrMsgContestNotFound  = "contest not found"
	ErrMsgQuestionNotFound = "question not found"

	// Configuration errors
	ErrMsgInvalidScoringRules  = "invalid scoring rules"
	ErrMsgInvalidPrizePool     = "invalid prize pool"
	ErrMsgInvalidContestConfig = "invalid contest configuration"

	// Database/System errors
	ErrMsgTxClosed          = "tx is closed"
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
	ErrMsgCacheMiss         = "cache miss"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Submission errors
	ErrDeadlinePassed     = errors.New(ErrMsgDeadlinePassed)
	ErrInvalidConfidence  = errors.New(ErrMsgInvalidConfidence)
	ErrSubmissionLocked   = errors.New(ErrMsgSubmissionLocked)
	ErrInvalidOption      = errors.New(ErrMsgInvalidOption)
	ErrContestNotOpen     = errors.New(ErrMsgContestNotOpen)
	ErrContestCancelled   = errors.New(ErrMsgContestCancelled)
	ErrParticipantMissing = errors.New(ErrMsgParticipantMissing)

	// Resolution errors. ErrDuplicateResolution and
	// ErrUnresolvedQuestionAtWindowClose are non-fatal and only logged.
	ErrDuplicateResolution             = errors.New(ErrMsgDuplicateResolution)
	ErrQuestionVoided                  = errors.New(ErrMsgQuestionVoided)
	ErrUnresolvedQuestionAtWindowClose = errors.New(ErrMsgUnresolvedQuestionAtWindowClose)

	// Evaluation errors. Both are fatal to the contest evaluation pass.
	ErrNegativeScore     = errors.New(ErrMsgNegativeScore)
	ErrPayoutSumMismatch = errors.New(ErrMsgPayoutSumMismatch)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrResultPending     = errors.New(ErrMsgResultPending)
	ErrAlreadyFinalized  = errors.New(ErrMsgAlreadyFinalized)

	// Lookup errors
	ErrContestNotFound  = errors.New(ErrMsgContestNotFound)
	ErrQuestionNotFound = errors.New(ErrMsgQuestionNotFound)

	// Configuration errors
	ErrInvalidScoringRules  = errors.New(ErrMsgInvalidScoringRules)
	ErrInvalidPrizePool     = errors.New(ErrMsgInvalidPrizePool)
	ErrInvalidContestConfig = errors.New(ErrMsgInvalidContestConfig)

	// Database/System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)
	ErrCacheMiss         = errors.New(ErrMsgCacheMiss)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
