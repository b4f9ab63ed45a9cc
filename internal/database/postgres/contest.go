package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PredictionContest_Go/internal/database/generated"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

// ContestRepository implements repository.Contest for PostgreSQL using sqlc
type ContestRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.Contest = (*ContestRepository)(nil)

// NewContestRepository creates a new ContestRepository
func NewContestRepository(db *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{
		db: db,
		q:  generated.New(db),
	}
}

// contestColumns matches the field order of generated.Contest
const contestColumns = `contest_id, name, starts_at, ends_at, rules, prize_pool, state, created_at, finalized_at`

// CreateContest inserts a contest and its questions in one transaction
func (r *ContestRepository) CreateContest(ctx context.Context, contest *domain.Contest, questions []domain.PredictionQuestion) error {
	rulesJSON, err := json.Marshal(contest.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	prizeJSON, err := json.Marshal(contest.PrizePool)
	if err != nil {
		return fmt.Errorf("failed to marshal prize pool: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)
	q := r.q.WithTx(tx)

	err = q.CreateContest(ctx, generated.CreateContestParams{
		ContestID: contest.ID,
		Name:      contest.Name,
		StartsAt:  timeToPgtimetz(contest.StartsAt),
		EndsAt:    timeToPgtimetz(contest.EndsAt),
		Rules:     rulesJSON,
		PrizePool: prizeJSON,
		State:     string(contest.State),
		CreatedAt: timeToPgtimetz(contest.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to insert contest: %w", err)
	}

	for _, question := range questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		err = q.CreateQuestion(ctx, generated.CreateQuestionParams{
			QuestionID:   question.ID,
			ContestID:    question.ContestID,
			Ordinal:      int32(question.Ordinal),
			Prompt:       question.Prompt,
			Category:     question.Category,
			Difficulty:   question.Difficulty,
			Options:      optionsJSON,
			OracleChoice: question.OracleChoice,
			Deadline:     ptrToPgtimetz(question.Deadline),
			Status:       string(question.Status),
		})
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate ordinal %d", domain.ErrInvalidContestConfig, question.Ordinal)
			}
			return fmt.Errorf("failed to insert question %d: %w", question.Ordinal, err)
		}
	}

	return tx.Commit(ctx)
}

// GetContest retrieves a contest with its ordered question IDs
func (r *ContestRepository) GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	return getContest(ctx, r.q, contestID)
}

// ListContests retrieves contests ordered by start time. The filter is
// optional per field so the statement is built here rather than generated.
func (r *ContestRepository) ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + contestColumns + ` FROM contests WHERE 1=1`)

	args := []any{}
	if filter.State != nil {
		args = append(args, string(*filter.State))
		fmt.Fprintf(&sb, " AND state = $%d", len(args))
	}
	sb.WriteString(" ORDER BY starts_at, contest_id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	contests, err := pgx.CollectRows(rows, pgx.RowToStructByPos[generated.Contest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect contests: %w", err)
	}
	return r.mapContests(ctx, contests)
}

// ListDueContests retrieves contests with a pending time-driven transition
func (r *ContestRepository) ListDueContests(ctx context.Context, now time.Time) ([]domain.Contest, error) {
	rows, err := r.q.ListDueContests(ctx, timeToPgtimetz(now))
	if err != nil {
		return nil, fmt.Errorf("failed to query due contests: %w", err)
	}
	return r.mapContests(ctx, rows)
}

func (r *ContestRepository) mapContests(ctx context.Context, rows []generated.Contest) ([]domain.Contest, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]domain.Contest, 0, len(rows))
	for _, row := range rows {
		c, err := mapContest(row)
		if err != nil {
			return nil, err
		}
		if c.QuestionIDs, err = questionIDs(ctx, r.q, c.ID); err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// GetQuestion retrieves a question by ID
func (r *ContestRepository) GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.PredictionQuestion, error) {
	row, err := r.q.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return mapQuestion(row)
}

// GetQuestions retrieves a contest's questions in ordinal order
func (r *ContestRepository) GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	return getQuestions(ctx, r.q, contestID)
}

// GetSubmission retrieves one participant's submission for a question
func (r *ContestRepository) GetSubmission(ctx context.Context, questionID uuid.UUID, participantID string) (*domain.PredictionSubmission, error) {
	row, err := r.q.GetSubmission(ctx, generated.GetSubmissionParams{
		QuestionID:    questionID,
		ParticipantID: participantID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	sub := mapSubmission(row)
	return &sub, nil
}

// GetContestSubmissions retrieves every submission in a contest
func (r *ContestRepository) GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	return getContestSubmissions(ctx, r.q, contestID)
}

// GetParticipantSubmissions retrieves one participant's submissions in question order
func (r *ContestRepository) GetParticipantSubmissions(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error) {
	rows, err := r.q.ListParticipantSubmissions(ctx, generated.ListParticipantSubmissionsParams{
		ContestID:     contestID,
		ParticipantID: participantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query participant submissions: %w", err)
	}
	return mapSubmissions(rows), nil
}

// GetParticipants retrieves participants ordered by join time
func (r *ContestRepository) GetParticipants(ctx context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error) {
	return getParticipants(ctx, r.q, contestID)
}

// GetStreaks retrieves streak state for every participant
func (r *ContestRepository) GetStreaks(ctx context.Context, contestID uuid.UUID) ([]domain.StreakState, error) {
	return getStreaks(ctx, r.q, contestID)
}

// GetContestResult retrieves the finalized result snapshot
func (r *ContestRepository) GetContestResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	row, err := r.q.GetContestResult(ctx, contestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contest result: %w", err)
	}
	return mapContestResult(row)
}

// UpdateContestStateIfMatches performs a compare-and-swap on the contest state
func (r *ContestRepository) UpdateContestStateIfMatches(ctx context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error) {
	return updateContestStateIfMatches(ctx, r.q, contestID, expected, next)
}

// BeginContestTx starts a new transaction
func (r *ContestRepository) BeginContestTx(ctx context.Context) (repository.ContestTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	return &contestTx{
		tx: tx,
		q:  r.q.WithTx(tx),
	}, nil
}

// ---- shared query helpers ----

func getContest(ctx context.Context, q *generated.Queries, contestID uuid.UUID) (*domain.Contest, error) {
	row, err := q.GetContest(ctx, contestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	c, err := mapContest(row)
	if err != nil {
		return nil, err
	}
	if c.QuestionIDs, err = questionIDs(ctx, q, contestID); err != nil {
		return nil, err
	}
	return c, nil
}

func questionIDs(ctx context.Context, q *generated.Queries, contestID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := q.ListQuestionIDs(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query question ids: %w", err)
	}
	return ids, nil
}

func getQuestions(ctx context.Context, q *generated.Queries, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	rows, err := q.ListQuestions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	var out []domain.PredictionQuestion
	for _, row := range rows {
		question, err := mapQuestion(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *question)
	}
	return out, nil
}

func getContestSubmissions(ctx context.Context, q *generated.Queries, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	rows, err := q.ListContestSubmissions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	return mapSubmissions(rows), nil
}

func getParticipants(ctx context.Context, q *generated.Queries, contestID uuid.UUID) ([]domain.ContestParticipant, error) {
	rows, err := q.ListParticipants(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	var out []domain.ContestParticipant
	for _, row := range rows {
		out = append(out, domain.ContestParticipant{
			ContestID:     row.ContestID,
			ParticipantID: row.ParticipantID,
			JoinedAt:      row.JoinedAt.Time,
		})
	}
	return out, nil
}

func getStreaks(ctx context.Context, q *generated.Queries, contestID uuid.UUID) ([]domain.StreakState, error) {
	rows, err := q.ListStreaks(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks: %w", err)
	}
	var out []domain.StreakState
	for _, row := range rows {
		out = append(out, mapStreak(row))
	}
	return out, nil
}

func updateContestStateIfMatches(ctx context.Context, q *generated.Queries, contestID uuid.UUID, expected, next domain.ContestState) (int64, error) {
	rows, err := q.UpdateContestStateIfMatches(ctx, generated.UpdateContestStateIfMatchesParams{
		NextState:     string(next),
		ContestID:     contestID,
		ExpectedState: string(expected),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update contest state: %w", err)
	}
	return rows, nil
}
