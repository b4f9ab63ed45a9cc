package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var stateIcons = map[domain.ContestState]string{
	domain.ContestStatePending:    "🕒",
	domain.ContestStateActive:     "🟢",
	domain.ContestStateEvaluating: "🧮",
	domain.ContestStateFinalized:  "🏁",
	domain.ContestStateCancelled:  "🚫",
}

var rankMedals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func discordTime(t time.Time) string {
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}

func formatContestList(contests []domain.Contest) string {
	if len(contests) == 0 {
		return MsgNoContests
	}
	var sb strings.Builder
	for _, c := range contests {
		fmt.Fprintf(&sb, "%s **%s** (%s)\n`%s`\n%s → %s\n\n",
			stateIcons[c.State], c.Name, c.State, c.ID, discordTime(c.StartsAt), discordTime(c.EndsAt))
	}
	return strings.TrimSpace(sb.String())
}

func formatContestDetail(d *ContestDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **%s**\nState: %s\nWindow: %s → %s\nPrize pool: %s %s\n",
		stateIcons[d.State], d.Name, d.State, discordTime(d.StartsAt), discordTime(d.EndsAt),
		d.PrizePool.Total.StringFixed(domain.CentPlaces), d.PrizePool.Currency)

	for _, q := range d.Questions {
		fmt.Fprintf(&sb, "\n**Q%d.** %s", q.Ordinal, q.Prompt)
		switch q.Status {
		case domain.QuestionStatusResolved:
			if q.ResolvedOutcome != nil {
				fmt.Fprintf(&sb, " ✅ `%s`", *q.ResolvedOutcome)
			}
		case domain.QuestionStatusVoid:
			sb.WriteString(" (void)")
		default:
			if q.Deadline != nil {
				fmt.Fprintf(&sb, " (closes %s)", discordTime(*q.Deadline))
			}
		}
		sb.WriteString("\n")
		for _, opt := range q.Options {
			fmt.Fprintf(&sb, "> `%s` %s\n", opt.ID, opt.Label)
		}
	}
	return strings.TrimSpace(sb.String())
}

func formatStandings(entries []domain.LeaderboardEntry, limit int) string {
	if len(entries) == 0 {
		return MsgNoStandings
	}
	var sb strings.Builder
	for idx, e := range entries {
		if limit > 0 && idx >= limit {
			fmt.Fprintf(&sb, "…and %d more\n", len(entries)-limit)
			break
		}
		rank := fmt.Sprintf("#%d", e.Rank)
		if medal, ok := rankMedals[e.Rank]; ok {
			rank = medal
		}
		fmt.Fprintf(&sb, "%s %s **%d** pts (%d/%d correct", rank, displayParticipant(e.ParticipantID),
			e.TotalScore, e.CorrectCount, e.ResolvedCount)
		if e.CurrentStreak > 1 {
			fmt.Fprintf(&sb, ", 🔥%d", e.CurrentStreak)
		}
		sb.WriteString(")\n")
	}
	return strings.TrimSpace(sb.String())
}

func formatHistory(history []domain.PredictionSubmission, ordinals map[string]int) string {
	if len(history) == 0 {
		return MsgNoHistory
	}
	var sb strings.Builder
	for _, sub := range history {
		label := "Q?"
		if ord, ok := ordinals[sub.QuestionID.String()]; ok {
			label = fmt.Sprintf("Q%d", ord)
		}
		fmt.Fprintf(&sb, "**%s** `%s` @ %d%%", label, sub.Choice, sub.Confidence)
		switch {
		case sub.Score == nil:
			sb.WriteString(" ⏳")
		case sub.IsCorrect != nil && *sub.IsCorrect:
			fmt.Fprintf(&sb, " ✅ +%d", *sub.Score)
		default:
			fmt.Fprintf(&sb, " ❌ %d", *sub.Score)
		}
		if sub.BeatOracle {
			sb.WriteString(" 🔮")
		}
		if sub.IsLate {
			sb.WriteString(" (late)")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

func formatResult(result *domain.ContestResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Finalized %s\nPrize pool: **%s %s**\n\n",
		discordTime(result.FinalizedAt), result.Total.StringFixed(domain.CentPlaces), result.Currency)
	if len(result.Payouts) == 0 {
		sb.WriteString(MsgNoPayouts)
		return sb.String()
	}
	for _, p := range result.Payouts {
		rank := fmt.Sprintf("#%d", p.Rank)
		if medal, ok := rankMedals[p.Rank]; ok {
			rank = medal
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", rank, displayParticipant(p.ParticipantID),
			p.Amount.StringFixed(domain.CentPlaces), result.Currency)
	}
	return strings.TrimSpace(sb.String())
}

func formatSubmission(sub *domain.PredictionSubmission, ordinal int) string {
	msg := fmt.Sprintf("Locked in `%s` for **Q%d** at %d%% confidence.", sub.Choice, ordinal, sub.Confidence)
	if sub.IsLate {
		msg += "\nThis pick came in late and won't earn a streak bonus."
	}
	return msg
}
