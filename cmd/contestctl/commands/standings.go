package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var standingsCmd = &cobra.Command{
	Use:   "standings <contest-id>",
	Short: "Show the live leaderboard for a contest",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runStandings),
}

func init() {
	rootCmd.AddCommand(standingsCmd)
}

func runStandings(ctx context.Context, a *app, out io.Writer, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid contest id %q: %w", args[0], err)
	}

	entries, err := a.leaderboard.Recompute(ctx, id)
	if err != nil {
		return err
	}
	renderStandings(out, entries)
	return nil
}

func renderStandings(out io.Writer, entries []domain.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "no participants")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("Rank", "Participant", "Score", "Correct", "Resolved", "Streak", "Oracle Beats", "Accuracy")
	for _, e := range entries {
		table.Append(
			fmt.Sprintf("%d", e.Rank),
			e.ParticipantID,
			fmt.Sprintf("%d", e.TotalScore),
			fmt.Sprintf("%d", e.CorrectCount),
			fmt.Sprintf("%d", e.ResolvedCount),
			fmt.Sprintf("%d", e.CurrentStreak),
			fmt.Sprintf("%d", e.OracleBeats),
			fmt.Sprintf("%.1f%%", e.Accuracy*100),
		)
	}
	table.Render()
}
