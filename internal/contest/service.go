// Package contest owns the contest lifecycle: creation, activation, game
// result resolution, window close, cancellation and finalization.
package contest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/concurrency"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/repository"
	"github.com/osse101/PredictionContest_Go/internal/scoring"
)

// Service defines the interface for contest lifecycle operations
type Service interface {
	CreateContest(ctx context.Context, cfg domain.ContestConfig) (*domain.Contest, error)
	Activate(ctx context.Context, contestID uuid.UUID) error
	Cancel(ctx context.Context, contestID uuid.UUID) error

	// Resolve records a game result and runs the scoring pass. Replayed results are no-ops.
	Resolve(ctx context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (*domain.ResolutionResult, error)

	// CloseWindow voids unresolved questions, stops submissions and attempts finalization
	CloseWindow(ctx context.Context, contestID uuid.UUID) error

	// AdvanceDue applies every time-driven transition due at now and returns how many contests it touched
	AdvanceDue(ctx context.Context, now time.Time) (int, error)

	GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error)
	GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error)
	ListContests(ctx context.Context, state *domain.ContestState, limit int) ([]domain.Contest, error)

	// GetContestResult returns domain.ErrResultPending until the contest is FINALIZED
	GetContestResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error)
}

type service struct {
	repo     repository.Contest
	eventBus event.Bus
	engine   *scoring.Engine
	locks    *concurrency.LockManager
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a new contest lifecycle service
func NewService(repo repository.Contest, eventBus event.Bus, engine *scoring.Engine, locks *concurrency.LockManager) Service {
	return NewServiceWithClock(repo, eventBus, engine, locks, time.Now)
}

// NewServiceWithClock creates a contest service with an injected clock
func NewServiceWithClock(repo repository.Contest, eventBus event.Bus, engine *scoring.Engine, locks *concurrency.LockManager, now func() time.Time) Service {
	if engine == nil {
		engine = scoring.NewEngineWithClock(now)
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:     repo,
		eventBus: eventBus,
		engine:   engine,
		locks:    locks,
		validate: validator.New(),
		now:      now,
	}
}

func (s *service) CreateContest(ctx context.Context, cfg domain.ContestConfig) (*domain.Contest, error) {
	log := logger.FromContext(ctx)

	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidContestConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	contest := &domain.Contest{
		ID:        uuid.New(),
		Name:      cfg.Name,
		StartsAt:  cfg.StartsAt,
		EndsAt:    cfg.EndsAt,
		Rules:     cfg.Rules.Normalized(),
		PrizePool: cfg.PrizePool,
		State:     domain.ContestStatePending,
		CreatedAt: now,
	}
	contest.PrizePool.Total = contest.PrizePool.Total.Round(domain.CentPlaces)

	questions := make([]domain.PredictionQuestion, 0, len(cfg.Questions))
	for _, qc := range cfg.Questions {
		questions = append(questions, domain.PredictionQuestion{
			ID:           uuid.New(),
			ContestID:    contest.ID,
			Ordinal:      qc.Ordinal,
			Prompt:       qc.Prompt,
			Category:     qc.Category,
			Difficulty:   qc.Difficulty,
			Options:      qc.Options,
			OracleChoice: qc.OracleChoice,
			Deadline:     qc.Deadline,
			Status:       domain.QuestionStatusOpen,
		})
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Ordinal < questions[j].Ordinal })
	for _, q := range questions {
		contest.QuestionIDs = append(contest.QuestionIDs, q.ID)
	}

	if err := s.repo.CreateContest(ctx, contest, questions); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateContest, err)
	}

	log.Info(LogMsgContestCreated, "contest_id", contest.ID, "name", contest.Name,
		"questions", len(questions), "starts_at", contest.StartsAt, "ends_at", contest.EndsAt)
	s.publish(ctx, event.NewContestCreatedEvent(contest))
	return contest, nil
}

func (s *service) GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	contest, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}
	return contest, nil
}

func (s *service) GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	if _, err := s.GetContest(ctx, contestID); err != nil {
		return nil, err
	}
	questions, err := s.repo.GetQuestions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestions, err)
	}
	return questions, nil
}

func (s *service) ListContests(ctx context.Context, state *domain.ContestState, limit int) ([]domain.Contest, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	contests, err := s.repo.ListContests(ctx, repository.ContestFilter{State: state, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListContests, err)
	}
	if contests == nil {
		contests = []domain.Contest{}
	}
	return contests, nil
}

func (s *service) GetContestResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.State == domain.ContestStateCancelled {
		return nil, domain.ErrContestCancelled
	}
	if contest.State != domain.ContestStateFinalized {
		return nil, domain.ErrResultPending
	}

	result, err := s.repo.GetContestResult(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetResult, err)
	}
	if result == nil {
		return nil, domain.ErrResultPending
	}
	return result, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToPublishEvent, "type", evt.Type, "error", err)
	}
}
