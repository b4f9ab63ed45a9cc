// Package memory provides an in-process implementation of repository.Contest.
// Write transactions are serialized and operate on a private copy of the
// state that replaces the live state on commit.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

type submissionKey struct {
	questionID    uuid.UUID
	participantID string
}

type memberKey struct {
	contestID     uuid.UUID
	participantID string
}

type state struct {
	contests     map[uuid.UUID]domain.Contest
	questions    map[uuid.UUID]domain.PredictionQuestion
	submissions  map[submissionKey]domain.PredictionSubmission
	participants map[memberKey]domain.ContestParticipant
	streaks      map[memberKey]domain.StreakState
	results      map[uuid.UUID]domain.ContestResult
}

func newState() *state {
	return &state{
		contests:     make(map[uuid.UUID]domain.Contest),
		questions:    make(map[uuid.UUID]domain.PredictionQuestion),
		submissions:  make(map[submissionKey]domain.PredictionSubmission),
		participants: make(map[memberKey]domain.ContestParticipant),
		streaks:      make(map[memberKey]domain.StreakState),
		results:      make(map[uuid.UUID]domain.ContestResult),
	}
}

// clone copies the maps. Values are replaced wholesale on write, never mutated in place.
func (s *state) clone() *state {
	out := &state{
		contests:     make(map[uuid.UUID]domain.Contest, len(s.contests)),
		questions:    make(map[uuid.UUID]domain.PredictionQuestion, len(s.questions)),
		submissions:  make(map[submissionKey]domain.PredictionSubmission, len(s.submissions)),
		participants: make(map[memberKey]domain.ContestParticipant, len(s.participants)),
		streaks:      make(map[memberKey]domain.StreakState, len(s.streaks)),
		results:      make(map[uuid.UUID]domain.ContestResult, len(s.results)),
	}
	for k, v := range s.contests {
		out.contests[k] = v
	}
	for k, v := range s.questions {
		out.questions[k] = v
	}
	for k, v := range s.submissions {
		out.submissions[k] = v
	}
	for k, v := range s.participants {
		out.participants[k] = v
	}
	for k, v := range s.streaks {
		out.streaks[k] = v
	}
	for k, v := range s.results {
		out.results[k] = v
	}
	return out
}

// Store is a repository.Contest backed by process memory
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state *state
}

var _ repository.Contest = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) read() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// write runs fn against the live state with all other writers excluded
func (s *Store) write(fn func(st *state)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	next := s.read().clone()
	fn(next)
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// CreateContest stores a contest and its questions
func (s *Store) CreateContest(_ context.Context, contest *domain.Contest, questions []domain.PredictionQuestion) error {
	s.write(func(st *state) {
		st.contests[contest.ID] = copyContest(*contest)
		for _, q := range questions {
			st.questions[q.ID] = q
		}
	})
	return nil
}

// GetContest returns the contest or nil
func (s *Store) GetContest(_ context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	return s.read().getContest(contestID), nil
}

// ListContests returns contests ordered by start time
func (s *Store) ListContests(_ context.Context, filter repository.ContestFilter) ([]domain.Contest, error) {
	st := s.read()
	var out []domain.Contest
	for _, c := range st.contests {
		if filter.State != nil && c.State != *filter.State {
			continue
		}
		out = append(out, copyContest(c))
	}
	sortContests(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ListDueContests returns contests with a pending time-driven transition
func (s *Store) ListDueContests(_ context.Context, now time.Time) ([]domain.Contest, error) {
	st := s.read()
	var out []domain.Contest
	for _, c := range st.contests {
		switch {
		case c.State == domain.ContestStatePending && !now.Before(c.StartsAt),
			c.State == domain.ContestStateActive && !now.Before(c.EndsAt),
			c.State == domain.ContestStateEvaluating:
			out = append(out, copyContest(c))
		}
	}
	sortContests(out)
	return out, nil
}

// GetQuestion returns the question or nil
func (s *Store) GetQuestion(_ context.Context, questionID uuid.UUID) (*domain.PredictionQuestion, error) {
	q, ok := s.read().questions[questionID]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// GetQuestions returns the contest's questions in ordinal order
func (s *Store) GetQuestions(_ context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	return s.read().contestQuestions(contestID), nil
}

// GetSubmission returns the participant's submission for a question or nil
func (s *Store) GetSubmission(_ context.Context, questionID uuid.UUID, participantID string) (*domain.PredictionSubmission, error) {
	sub, ok := s.read().submissions[submissionKey{questionID, participantID}]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

// GetContestSubmissions returns every submission in the contest
func (s *Store) GetContestSubmissions(_ context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	return s.read().contestSubmissions(contestID, ""), nil
}

// GetParticipantSubmissions returns one participant's submissions in question order
func (s *Store) GetParticipantSubmissions(_ context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error) {
	return s.read().contestSubmissions(contestID, participantID), nil
}

// GetParticipants returns participants ordered by join time
func (s *Store) GetParticipants(_ context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error) {
	return s.read().contestParticipants(contestID), nil
}

// GetStreaks returns the contest's streak states
func (s *Store) GetStreaks(_ context.Context, contestID uuid.UUID) ([]domain.StreakState, error) {
	return s.read().contestStreaks(contestID), nil
}

// GetContestResult returns the finalized result or nil
func (s *Store) GetContestResult(_ context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	r, ok := s.read().results[contestID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// UpdateContestStateIfMatches swaps the contest state when it equals expected
func (s *Store) UpdateContestStateIfMatches(_ context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error) {
	var rows int64
	s.write(func(st *state) {
		rows = st.swapState(contestID, expected, next)
	})
	return rows, nil
}

// BeginContestTx starts a serialized write transaction
func (s *Store) BeginContestTx(ctx context.Context) (repository.ContestTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()
	return &contestTx{store: s, st: s.read().clone()}, nil
}

// state helpers shared by the store and its transactions

func (st *state) getContest(id uuid.UUID) *domain.Contest {
	c, ok := st.contests[id]
	if !ok {
		return nil
	}
	out := copyContest(c)
	return &out
}

func (st *state) contestQuestions(contestID uuid.UUID) []domain.PredictionQuestion {
	var out []domain.PredictionQuestion
	for _, q := range st.questions {
		if q.ContestID == contestID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

func (st *state) contestSubmissions(contestID uuid.UUID, participantID string) []domain.PredictionSubmission {
	var out []domain.PredictionSubmission
	for _, sub := range st.submissions {
		if sub.ContestID != contestID {
			continue
		}
		if participantID != "" && sub.ParticipantID != participantID {
			continue
		}
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := st.questions[out[i].QuestionID].Ordinal, st.questions[out[j].QuestionID].Ordinal
		if oi != oj {
			return oi < oj
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out
}

func (st *state) contestParticipants(contestID uuid.UUID) []domain.ContestParticipant {
	var out []domain.ContestParticipant
	for k, p := range st.participants {
		if k.contestID == contestID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out
}

func (st *state) contestStreaks(contestID uuid.UUID) []domain.StreakState {
	var out []domain.StreakState
	for k, s := range st.streaks {
		if k.contestID == contestID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out
}

func (st *state) swapState(contestID uuid.UUID, expected, next domain.ContestState) int64 {
	c, ok := st.contests[contestID]
	if !ok || c.State != expected {
		return 0
	}
	c.State = next
	st.contests[contestID] = c
	return 1
}

func copyContest(c domain.Contest) domain.Contest {
	c.QuestionIDs = append([]uuid.UUID(nil), c.QuestionIDs...)
	c.PrizePool.Tiers = append([]domain.PrizeTier(nil), c.PrizePool.Tiers...)
	return c
}

func sortContests(cs []domain.Contest) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].StartsAt.Equal(cs[j].StartsAt) {
			return cs[i].StartsAt.Before(cs[j].StartsAt)
		}
		return cs[i].ID.String() < cs[j].ID.String()
	})
}

// Ping always succeeds. It lets the store stand in for a database pool in readiness checks.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op
func (s *Store) Close() {}
