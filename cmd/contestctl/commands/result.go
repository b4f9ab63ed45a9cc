package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var resultCmd = &cobra.Command{
	Use:   "result <contest-id>",
	Short: "Show the finalized payouts for a contest",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runResult),
}

func init() {
	rootCmd.AddCommand(resultCmd)
}

func runResult(ctx context.Context, a *app, out io.Writer, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid contest id %q: %w", args[0], err)
	}

	result, err := a.contests.GetContestResult(ctx, id)
	switch {
	case errors.Is(err, domain.ErrResultPending):
		_, err = fmt.Fprintln(out, "result pending: contest has not finalized")
		return err
	case errors.Is(err, domain.ErrContestCancelled):
		_, err = fmt.Fprintln(out, "contest was cancelled: no payouts")
		return err
	case err != nil:
		return err
	}
	renderResult(out, result)
	return nil
}

func renderResult(out io.Writer, result *domain.ContestResult) {
	fmt.Fprintf(out, "finalized %s, pool %s %s\n",
		result.FinalizedAt.UTC().Format("2006-01-02 15:04 MST"),
		result.Total.StringFixed(domain.CentPlaces),
		result.Currency)

	if len(result.Payouts) == 0 {
		fmt.Fprintln(out, "no payouts")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("Rank", "Participant", "Amount")
	for _, p := range result.Payouts {
		table.Append(
			fmt.Sprintf("%d", p.Rank),
			p.ParticipantID,
			p.Amount.StringFixed(domain.CentPlaces),
		)
	}
	table.Render()
}
