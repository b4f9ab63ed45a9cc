package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var resolveAt string

var resolveCmd = &cobra.Command{
	Use:   "resolve <question-id> <outcome>",
	Short: "Record a game result and score the question",
	Long: `Records the outcome for a question. Replaying a result for a question that
is already resolved is reported and changes nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(runResolve),
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveAt, "at", "", "resolution time in RFC3339 (default now)")
}

func runResolve(ctx context.Context, a *app, out io.Writer, args []string) error {
	questionID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid question id %q: %w", args[0], err)
	}

	at := time.Now()
	if resolveAt != "" {
		at, err = time.Parse(time.RFC3339, resolveAt)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	res, err := a.contests.Resolve(ctx, questionID, args[1], at)
	if err != nil {
		return err
	}

	switch {
	case res.Duplicate:
		_, err = fmt.Fprintln(out, "question was already resolved; nothing changed")
	case res.Ignored:
		_, err = fmt.Fprintf(out, "result ignored: contest is %s\n", res.ContestState)
	default:
		_, err = fmt.Fprintf(out, "resolved; %d question(s) scored, contest %s", res.QuestionsScored, res.ContestState)
		if err == nil && res.Finalized {
			_, err = fmt.Fprint(out, " (finalized)")
		}
		if err == nil {
			_, err = fmt.Fprintln(out)
		}
	}
	return err
}
