package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/contest"
)

var seedCmd = &cobra.Command{
	Use:   "seed <dir>",
	Short: "Create contests from YAML definitions",
	Long:  `Creates every contest defined in the directory's YAML files that does not already exist by name.`,
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runSeed),
}

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Apply every due activation, window close and finalization",
	Args:  cobra.NoArgs,
	RunE:  withApp(runAdvance),
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(advanceCmd)
}

func runSeed(ctx context.Context, a *app, out io.Writer, args []string) error {
	created, err := contest.NewLoader(args[0]).Seed(ctx, a.contests)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "created %d contest(s)\n", created)
	return err
}

func runAdvance(ctx context.Context, a *app, out io.Writer, _ []string) error {
	n, err := a.contests.AdvanceDue(ctx, time.Now())
	if _, werr := fmt.Fprintf(out, "advanced %d contest(s)\n", n); werr != nil && err == nil {
		err = werr
	}
	return err
}
