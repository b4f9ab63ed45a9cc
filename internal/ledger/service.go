// Package ledger accepts and stores participant predictions. It never scores.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

// SubmitRequest is a participant's pick for one question
type SubmitRequest struct {
	ParticipantID string    `json:"participant_id" validate:"required,max=100,participant"`
	QuestionID    uuid.UUID `json:"question_id" validate:"required"`
	Choice        string    `json:"choice" validate:"required,max=64"`
	Confidence    int       `json:"confidence" validate:"gte=0,lte=100"`
}

// Service defines the interface for prediction ledger operations
type Service interface {
	// Submit creates or replaces a participant's prediction for a question
	Submit(ctx context.Context, req SubmitRequest) (*domain.PredictionSubmission, error)

	// History returns a participant's submissions in question order, with scores
	History(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error)
}

type service struct {
	repo     repository.Contest
	eventBus event.Bus
	now      func() time.Time
}

// NewService creates a new ledger service
func NewService(repo repository.Contest, eventBus event.Bus) Service {
	return NewServiceWithClock(repo, eventBus, time.Now)
}

// NewServiceWithClock creates a ledger service with an injected clock
func NewServiceWithClock(repo repository.Contest, eventBus event.Bus, now func() time.Time) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		now:      now,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*domain.PredictionSubmission, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSubmitCalled, "participant_id", req.ParticipantID, "question_id", req.QuestionID)

	if req.Confidence < MinConfidence || req.Confidence > MaxConfidence {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidConfidence, req.Confidence)
	}
	if req.ParticipantID == "" {
		return nil, domain.ErrParticipantMissing
	}

	q, contest, err := s.loadQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}
	if !q.HasOption(req.Choice) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOption, req.Choice)
	}
	switch contest.State {
	case domain.ContestStatePending:
		return nil, domain.ErrContestNotOpen
	case domain.ContestStateCancelled:
		return nil, domain.ErrContestCancelled
	}

	now := s.now()
	late := false
	if deadlinePassed(contest, q, now) {
		existing, err := s.repo.GetSubmission(ctx, q.ID, req.ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetSubmission, err)
		}
		if existing != nil {
			log.Info(LogMsgSubmissionRejected, "participant_id", req.ParticipantID, "question_id", q.ID, "reason", domain.ErrMsgSubmissionLocked)
			return nil, domain.ErrSubmissionLocked
		}
		if !lateEntryAllowed(contest, q) {
			log.Info(LogMsgSubmissionRejected, "participant_id", req.ParticipantID, "question_id", q.ID, "reason", domain.ErrMsgDeadlinePassed)
			return nil, domain.ErrDeadlinePassed
		}
		late = true
	}

	sub := &domain.PredictionSubmission{
		ID:            uuid.New(),
		ContestID:     contest.ID,
		QuestionID:    q.ID,
		ParticipantID: req.ParticipantID,
		Choice:        req.Choice,
		Confidence:    req.Confidence,
		SubmittedAt:   now,
		UpdatedAt:     now,
		IsLate:        late,
	}

	replaced, err := s.store(ctx, sub)
	if err != nil {
		return nil, err
	}

	if late {
		log.Info(LogMsgLateEntryAccepted, "participant_id", sub.ParticipantID, "question_id", sub.QuestionID)
	} else {
		log.Info(LogMsgSubmissionAccepted, "participant_id", sub.ParticipantID, "question_id", sub.QuestionID, "replaced", replaced)
	}
	s.publishSubmitted(ctx, sub, replaced)
	return sub, nil
}

func (s *service) loadQuestion(ctx context.Context, questionID uuid.UUID) (*domain.PredictionQuestion, *domain.Contest, error) {
	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestion, err)
	}
	if q == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}

	contest, err := s.repo.GetContest(ctx, q.ContestID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, q.ContestID)
	}
	return q, contest, nil
}

// store writes the submission and records the participant in one transaction.
// The write is conditional on the question still being OPEN and any prior
// submission being unscored, which closes the race with a concurrent resolve.
func (s *service) store(ctx context.Context, sub *domain.PredictionSubmission) (bool, error) {
	tx, err := s.repo.BeginContestTx(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, replaced, err := tx.UpsertSubmission(ctx, sub)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToSaveSubmission, err)
	}
	if rows == 0 {
		existing, err := s.repo.GetSubmission(ctx, sub.QuestionID, sub.ParticipantID)
		if err != nil {
			return false, fmt.Errorf("%s: %w", ErrContextFailedToGetSubmission, err)
		}
		if existing != nil {
			return false, domain.ErrSubmissionLocked
		}
		return false, domain.ErrDeadlinePassed
	}

	if err := tx.EnsureParticipant(ctx, sub.ContestID, sub.ParticipantID, sub.SubmittedAt); err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToJoinContest, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return replaced, nil
}

func (s *service) History(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error) {
	if participantID == "" {
		return nil, domain.ErrParticipantMissing
	}
	contest, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}

	subs, err := s.repo.GetParticipantSubmissions(ctx, contestID, participantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetHistory, err)
	}
	if subs == nil {
		subs = []domain.PredictionSubmission{}
	}
	return subs, nil
}

func (s *service) publishSubmitted(ctx context.Context, sub *domain.PredictionSubmission, replaced bool) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event.NewPredictionSubmittedEvent(sub, replaced)); err != nil {
		logger.FromContext(ctx).Error("Failed to publish prediction submitted event", "error", err)
	}
}

// deadlinePassed reports whether new picks for q are past their deadline
func deadlinePassed(c *domain.Contest, q *domain.PredictionQuestion, now time.Time) bool {
	switch {
	case c.State != domain.ContestStateActive:
		return true
	case c.WindowClosed(now):
		return true
	case c.Rules.PerQuestionDeadlines && q.DeadlinePassed(now):
		return true
	case q.Status != domain.QuestionStatusOpen:
		return true
	}
	return false
}

func lateEntryAllowed(c *domain.Contest, q *domain.PredictionQuestion) bool {
	if !c.Rules.AllowLateEntries || q.Status != domain.QuestionStatusOpen {
		return false
	}
	return c.State == domain.ContestStateActive || c.State == domain.ContestStateEvaluating
}
