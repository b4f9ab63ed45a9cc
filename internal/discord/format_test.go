package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"deadline", "API error: The submission deadline has passed", MsgDeadlinePassed},
		{"locked", "API error: This prediction is locked", MsgSubmissionLocked},
		{"bad choice", "API error: That choice is not an option for this question", MsgInvalidChoice},
		{"not open", "API error: The contest is not open yet", MsgContestNotOpen},
		{"cancelled", "API error: The contest has been cancelled", MsgContestCancelled},
		{"contest missing", "API error: Contest not found", MsgContestNotFound},
		{"bad contest id", "API error: Invalid contest ID", MsgContestNotFound},
		{"question missing", "question not found: Q9", MsgQuestionNotFound},
		{"retries", "max retries exceeded: server error", MsgServiceUnavailable},
		{"generic", "some random error", "❌ some random error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestDisplayParticipant(t *testing.T) {
	assert.Equal(t, "<@1234>", displayParticipant(participantFor(&discordgo.User{ID: "1234"})))
	assert.Equal(t, "twitch:alice", displayParticipant("twitch:alice"))
}

func TestFormatStandings(t *testing.T) {
	assert.Equal(t, MsgNoStandings, formatStandings(nil, 10))

	entries := []domain.LeaderboardEntry{
		{Rank: 1, ParticipantID: "discord:1", TotalScore: 300, CorrectCount: 3, ResolvedCount: 3, CurrentStreak: 3},
		{Rank: 1, ParticipantID: "alice", TotalScore: 300, CorrectCount: 3, ResolvedCount: 3},
		{Rank: 3, ParticipantID: "bob", TotalScore: 100, CorrectCount: 1, ResolvedCount: 3},
		{Rank: 4, ParticipantID: "carol", TotalScore: 0, CorrectCount: 0, ResolvedCount: 3},
	}

	out := formatStandings(entries, 3)
	assert.Contains(t, out, "🥇 <@1> **300** pts (3/3 correct, 🔥3)")
	assert.Contains(t, out, "🥇 alice **300** pts (3/3 correct)")
	assert.Contains(t, out, "🥉 bob **100** pts (1/3 correct)")
	assert.NotContains(t, out, "carol")
	assert.Contains(t, out, "…and 1 more")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, MsgNoHistory, formatHistory(nil, nil))

	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	history := []domain.PredictionSubmission{
		{QuestionID: q1, Choice: "a", Confidence: 90, Score: int64Ptr(150), IsCorrect: boolPtr(true), BeatOracle: true},
		{QuestionID: q2, Choice: "b", Confidence: 40, Score: int64Ptr(0), IsCorrect: boolPtr(false), IsLate: true},
		{QuestionID: q3, Choice: "c", Confidence: 100},
	}
	ordinals := map[string]int{q1.String(): 1, q2.String(): 2}

	out := formatHistory(history, ordinals)
	assert.Contains(t, out, "**Q1** `a` @ 90% ✅ +150 🔮")
	assert.Contains(t, out, "**Q2** `b` @ 40% ❌ 0 (late)")
	assert.Contains(t, out, "**Q?** `c` @ 100% ⏳")
}

func TestFormatResult(t *testing.T) {
	result := &domain.ContestResult{
		Total:       decimal.RequireFromString("100"),
		Currency:    "USD",
		FinalizedAt: time.Unix(1700000000, 0),
		Payouts: []domain.Payout{
			{ParticipantID: "discord:1", Rank: 1, Amount: decimal.RequireFromString("33.34")},
			{ParticipantID: "bob", Rank: 1, Amount: decimal.RequireFromString("33.33")},
			{ParticipantID: "carol", Rank: 1, Amount: decimal.RequireFromString("33.33")},
		},
	}

	out := formatResult(result)
	assert.Contains(t, out, "<t:1700000000:f>")
	assert.Contains(t, out, "**100.00 USD**")
	assert.Contains(t, out, "🥇 <@1> 33.34 USD")
	assert.Contains(t, out, "🥇 bob 33.33 USD")

	result.Payouts = nil
	assert.Contains(t, formatResult(result), MsgNoPayouts)
}

func TestFormatContestDetail(t *testing.T) {
	outcome := "yes"
	deadline := time.Unix(1700003600, 0)
	detail := &ContestDetail{
		Contest: domain.Contest{
			Name:      "Finals",
			State:     domain.ContestStateActive,
			StartsAt:  time.Unix(1700000000, 0),
			EndsAt:    time.Unix(1700007200, 0),
			PrizePool: domain.PrizePool{Total: decimal.NewFromInt(50), Currency: "EUR"},
		},
		Questions: []domain.PredictionQuestion{
			{Ordinal: 1, Prompt: "Rain?", Status: domain.QuestionStatusResolved, ResolvedOutcome: &outcome,
				Options: []domain.PredictionOption{{ID: "yes", Label: "Yes"}, {ID: "no", Label: "No"}}},
			{Ordinal: 2, Prompt: "Snow?", Status: domain.QuestionStatusOpen, Deadline: &deadline,
				Options: []domain.PredictionOption{{ID: "yes", Label: "Yes"}}},
			{Ordinal: 3, Prompt: "Hail?", Status: domain.QuestionStatusVoid},
		},
	}

	out := formatContestDetail(detail)
	assert.Contains(t, out, "🟢 **Finals**")
	assert.Contains(t, out, "Prize pool: 50.00 EUR")
	assert.Contains(t, out, "**Q1.** Rain? ✅ `yes`")
	assert.Contains(t, out, "> `no` No")
	assert.Contains(t, out, "**Q2.** Snow? (closes <t:1700003600:f>)")
	assert.Contains(t, out, "**Q3.** Hail? (void)")
}

func TestFormatContestList(t *testing.T) {
	assert.Equal(t, MsgNoContests, formatContestList(nil))

	id := uuid.New()
	out := formatContestList([]domain.Contest{{ID: id, Name: "Finals", State: domain.ContestStatePending}})
	assert.Contains(t, out, "🕒 **Finals** (PENDING)")
	assert.Contains(t, out, id.String())
}

func TestFormatSubmission(t *testing.T) {
	sub := &domain.PredictionSubmission{Choice: "a", Confidence: 75}
	assert.Equal(t, "Locked in `a` for **Q2** at 75% confidence.", formatSubmission(sub, 2))

	sub.IsLate = true
	assert.Contains(t, formatSubmission(sub, 2), "late")
}

func TestContestChoices(t *testing.T) {
	a := domain.Contest{ID: uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000"), Name: "Spring Finals"}
	b := domain.Contest{ID: uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000"), Name: "Autumn Cup"}

	assert.Len(t, contestChoices([]domain.Contest{a, b}, ""), 2)

	byName := contestChoices([]domain.Contest{a, b}, "FINALS")
	if assert.Len(t, byName, 1) {
		assert.Equal(t, a.ID.String(), byName[0].Value)
	}

	byID := contestChoices([]domain.Contest{a, b}, "bbbb")
	if assert.Len(t, byID, 1) {
		assert.Equal(t, "Autumn Cup", byID[0].Name)
	}

	many := make([]domain.Contest, 40)
	for i := range many {
		many[i] = domain.Contest{ID: uuid.New(), Name: "Contest"}
	}
	assert.Len(t, contestChoices(many, ""), MaxAutocomplete)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
