package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var (
	contestsState string
	contestsLimit int
)

var contestsCmd = &cobra.Command{
	Use:   "contests",
	Short: "List contests",
	Args:  cobra.NoArgs,
	RunE:  withApp(runContests),
}

func init() {
	rootCmd.AddCommand(contestsCmd)
	contestsCmd.Flags().StringVar(&contestsState, "state", "", "only contests in this state")
	contestsCmd.Flags().IntVar(&contestsLimit, "limit", 0, "maximum contests to list (0 for the service default)")
}

func runContests(ctx context.Context, a *app, out io.Writer, _ []string) error {
	var state *domain.ContestState
	if contestsState != "" {
		s := domain.ContestState(strings.ToUpper(contestsState))
		state = &s
	}

	contests, err := a.contests.ListContests(ctx, state, contestsLimit)
	if err != nil {
		return err
	}
	renderContests(out, contests)
	return nil
}

func renderContests(out io.Writer, contests []domain.Contest) {
	if len(contests) == 0 {
		fmt.Fprintln(out, "no contests")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Name", "State", "Starts", "Ends", "Questions")
	for _, c := range contests {
		table.Append(
			c.ID.String(),
			c.Name,
			string(c.State),
			c.StartsAt.UTC().Format(time.RFC3339),
			c.EndsAt.UTC().Format(time.RFC3339),
			fmt.Sprintf("%d", len(c.QuestionIDs)),
		)
	}
	table.Render()
}
