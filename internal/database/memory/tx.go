package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

type contestTx struct {
	store *Store
	st    *state
	done  bool
}

var _ repository.ContestTx = (*contestTx)(nil)

func (tx *contestTx) Commit(_ context.Context) error {
	if tx.done {
		return errTxClosed
	}
	tx.done = true
	tx.store.mu.Lock()
	tx.store.state = tx.st
	tx.store.mu.Unlock()
	tx.store.txMu.Unlock()
	return nil
}

func (tx *contestTx) Rollback(_ context.Context) error {
	if tx.done {
		return errTxClosed
	}
	tx.done = true
	tx.store.txMu.Unlock()
	return nil
}

func (tx *contestTx) GetContest(_ context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	return tx.st.getContest(contestID), nil
}

func (tx *contestTx) GetQuestions(_ context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	return tx.st.contestQuestions(contestID), nil
}

func (tx *contestTx) GetQuestionSubmissions(_ context.Context, questionID uuid.UUID) ([]domain.PredictionSubmission, error) {
	var out []domain.PredictionSubmission
	for k, sub := range tx.st.submissions {
		if k.questionID == questionID {
			out = append(out, sub)
		}
	}
	sortByParticipant(out)
	return out, nil
}

func (tx *contestTx) GetContestSubmissions(_ context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	return tx.st.contestSubmissions(contestID, ""), nil
}

func (tx *contestTx) GetParticipants(_ context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error) {
	return tx.st.contestParticipants(contestID), nil
}

func (tx *contestTx) GetStreaks(_ context.Context, contestID uuid.UUID) ([]domain.StreakState, error) {
	return tx.st.contestStreaks(contestID), nil
}

func (tx *contestTx) UpsertSubmission(_ context.Context, sub *domain.PredictionSubmission) (int64, bool, error) {
	q, ok := tx.st.questions[sub.QuestionID]
	if !ok || q.Status != domain.QuestionStatusOpen {
		return 0, false, nil
	}

	key := submissionKey{sub.QuestionID, sub.ParticipantID}
	existing, replaced := tx.st.submissions[key]
	if replaced {
		if existing.IsScored() {
			return 0, false, nil
		}
		// Identity and first-submission time survive replacement
		sub.ID = existing.ID
		sub.SubmittedAt = existing.SubmittedAt
	}
	tx.st.submissions[key] = *sub
	return 1, replaced, nil
}

func (tx *contestTx) EnsureParticipant(_ context.Context, contestID uuid.UUID, participantID string, joinedAt time.Time) error {
	key := memberKey{contestID, participantID}
	if _, ok := tx.st.participants[key]; ok {
		return nil
	}
	tx.st.participants[key] = domain.ContestParticipant{
		ContestID:     contestID,
		ParticipantID: participantID,
		JoinedAt:      joinedAt,
	}
	return nil
}

func (tx *contestTx) ResolveQuestionIfOpen(_ context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (int64, error) {
	q, ok := tx.st.questions[questionID]
	if !ok || q.Status != domain.QuestionStatusOpen {
		return 0, nil
	}
	q.Status = domain.QuestionStatusResolved
	q.ResolvedOutcome = &outcome
	q.ResolvedAt = &resolvedAt
	tx.st.questions[questionID] = q
	return 1, nil
}

func (tx *contestTx) VoidOpenQuestions(_ context.Context, contestID uuid.UUID, at time.Time) (int64, error) {
	var rows int64
	for id, q := range tx.st.questions {
		if q.ContestID != contestID || q.Status != domain.QuestionStatusOpen {
			continue
		}
		q.Status = domain.QuestionStatusVoid
		q.ResolvedAt = &at
		tx.st.questions[id] = q
		rows++
	}
	return rows, nil
}

func (tx *contestTx) SaveSubmissionScore(_ context.Context, sub *domain.PredictionSubmission) (int64, error) {
	key := submissionKey{sub.QuestionID, sub.ParticipantID}
	existing, ok := tx.st.submissions[key]
	if !ok || existing.IsScored() {
		return 0, nil
	}
	existing.Score = sub.Score
	existing.IsCorrect = sub.IsCorrect
	existing.BeatOracle = sub.BeatOracle
	existing.StreakBonus = sub.StreakBonus
	existing.ScoredAt = sub.ScoredAt
	tx.st.submissions[key] = existing
	return 1, nil
}

func (tx *contestTx) UpsertStreaks(_ context.Context, streaks []domain.StreakState) error {
	for _, s := range streaks {
		tx.st.streaks[memberKey{s.ContestID, s.ParticipantID}] = s
	}
	return nil
}

func (tx *contestTx) MarkQuestionScored(_ context.Context, questionID uuid.UUID, at time.Time) (int64, error) {
	q, ok := tx.st.questions[questionID]
	if !ok || q.ScoredAt != nil {
		return 0, nil
	}
	q.ScoredAt = &at
	tx.st.questions[questionID] = q
	return 1, nil
}

func (tx *contestTx) UpdateContestStateIfMatches(_ context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error) {
	return tx.st.swapState(contestID, expected, next), nil
}

func (tx *contestTx) FinalizeContest(_ context.Context, contestID uuid.UUID, at time.Time) (int64, error) {
	c, ok := tx.st.contests[contestID]
	if !ok || c.State != domain.ContestStateEvaluating || c.FinalizedAt != nil {
		return 0, nil
	}
	c.State = domain.ContestStateFinalized
	c.FinalizedAt = &at
	tx.st.contests[contestID] = c
	return 1, nil
}

func (tx *contestTx) SaveContestResult(_ context.Context, result *domain.ContestResult) error {
	tx.st.results[result.ContestID] = *result
	return nil
}

func sortByParticipant(subs []domain.PredictionSubmission) {
	sort.Slice(subs, func(i, j int) bool { return subs[i].ParticipantID < subs[j].ParticipantID })
}
