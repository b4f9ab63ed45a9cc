package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/osse101/PredictionContest_Go/internal/database/generated"
	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var errNonFiniteNumeric = errors.New("numeric is not a finite value")

// ---- pgtype conversions ----

func timeToPgtimetz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func ptrToPgtimetz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgtimetzToPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func strToText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func textToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func ptrToInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func int8ToPtr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func ptrToBool(v *bool) pgtype.Bool {
	if v == nil {
		return pgtype.Bool{Valid: false}
	}
	return pgtype.Bool{Bool: *v, Valid: true}
}

func boolToPtr(v pgtype.Bool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

// decimalToNumeric rounds to cents, matching the NUMERIC(20, 2) columns
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	d = d.Round(domain.CentPlaces)
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, errNonFiniteNumeric
	}
	if n.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// ---- row mappers ----

// mapContest converts a generated.Contest; QuestionIDs are filled by the caller
func mapContest(row generated.Contest) (*domain.Contest, error) {
	c := &domain.Contest{
		ID:          row.ContestID,
		Name:        row.Name,
		StartsAt:    row.StartsAt.Time,
		EndsAt:      row.EndsAt.Time,
		State:       domain.ContestState(row.State),
		CreatedAt:   row.CreatedAt.Time,
		FinalizedAt: pgtimetzToPtr(row.FinalizedAt),
	}
	if err := json.Unmarshal(row.Rules, &c.Rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	if err := json.Unmarshal(row.PrizePool, &c.PrizePool); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prize pool: %w", err)
	}
	return c, nil
}

func mapQuestion(row generated.ContestQuestion) (*domain.PredictionQuestion, error) {
	q := &domain.PredictionQuestion{
		ID:              row.QuestionID,
		ContestID:       row.ContestID,
		Ordinal:         int(row.Ordinal),
		Prompt:          row.Prompt,
		Category:        row.Category,
		Difficulty:      row.Difficulty,
		OracleChoice:    row.OracleChoice,
		Deadline:        pgtimetzToPtr(row.Deadline),
		Status:          domain.QuestionStatus(row.Status),
		ResolvedOutcome: textToPtr(row.ResolvedOutcome),
		ResolvedAt:      pgtimetzToPtr(row.ResolvedAt),
		ScoredAt:        pgtimetzToPtr(row.ScoredAt),
	}
	if err := json.Unmarshal(row.Options, &q.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return q, nil
}

func mapSubmission(row generated.PredictionSubmission) domain.PredictionSubmission {
	return domain.PredictionSubmission{
		ID:            row.SubmissionID,
		ContestID:     row.ContestID,
		QuestionID:    row.QuestionID,
		ParticipantID: row.ParticipantID,
		Choice:        row.Choice,
		Confidence:    int(row.Confidence),
		SubmittedAt:   row.SubmittedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
		IsLate:        row.IsLate,
		Score:         int8ToPtr(row.Score),
		IsCorrect:     boolToPtr(row.IsCorrect),
		BeatOracle:    row.BeatOracle,
		StreakBonus:   row.StreakBonus,
		ScoredAt:      pgtimetzToPtr(row.ScoredAt),
	}
}

func mapSubmissions(rows []generated.PredictionSubmission) []domain.PredictionSubmission {
	if len(rows) == 0 {
		return nil
	}
	out := make([]domain.PredictionSubmission, len(rows))
	for i, row := range rows {
		out[i] = mapSubmission(row)
	}
	return out
}

func mapStreak(row generated.ParticipantStreak) domain.StreakState {
	return domain.StreakState{
		ContestID:     row.ContestID,
		ParticipantID: row.ParticipantID,
		CurrentStreak: int(row.CurrentStreak),
		LastOrdinal:   int(row.LastOrdinal),
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

func mapContestResult(row generated.ContestResult) (*domain.ContestResult, error) {
	result := &domain.ContestResult{
		ContestID:   row.ContestID,
		Currency:    row.Currency,
		FinalizedAt: row.FinalizedAt.Time,
	}
	if err := json.Unmarshal(row.Leaderboard, &result.Leaderboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	if err := json.Unmarshal(row.Payouts, &result.Payouts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payouts: %w", err)
	}
	total, err := numericToDecimal(row.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result total: %w", err)
	}
	result.Total = total
	return result, nil
}

// scoreParams carries the scoring fields of sub into the CAS update
func scoreParams(sub *domain.PredictionSubmission) generated.SaveSubmissionScoreParams {
	return generated.SaveSubmissionScoreParams{
		QuestionID:    sub.QuestionID,
		ParticipantID: sub.ParticipantID,
		Score:         ptrToInt8(sub.Score),
		IsCorrect:     ptrToBool(sub.IsCorrect),
		BeatOracle:    sub.BeatOracle,
		StreakBonus:   sub.StreakBonus,
		ScoredAt:      ptrToPgtimetz(sub.ScoredAt),
	}
}
