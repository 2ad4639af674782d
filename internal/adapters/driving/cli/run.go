package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/connectors/github"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
	"github.com/custodia-labs/sectrack/internal/core/services"
)

var (
	runDryRun bool
	runFormat string
	runEvery  time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch new pull requests and emit security records",
	Long: `Runs one ingestion pass against the configured repository.

Tracked open security pull requests are re-checked first and dropped once
closed. The listing is then walked from the newest pull request down to the
last one processed. A record is printed for every pull request carrying the
security label, and the cursor and open set are saved once the pass succeeds.

Records go to stdout. The run summary goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "work on a copy of the saved state and persist nothing")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "record format: auto, json or text (default from output.format)")
	runCmd.Flags().DurationVar(&runEvery, "every", 0, "keep running, starting a new pass this long after the previous one")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	session, err := openSession(ctx, SessionOptions{
		DryRun: runDryRun,
		Format: runFormat,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer session.close()

	if runEvery > 0 {
		scheduler := services.NewScheduler(session.Runner, runEvery, func(r *driving.RunReport) {
			printReport(cmd, r)
		})
		err := scheduler.Start(ctx)
		runs, failed := scheduler.Stats()
		cmd.PrintErrf("Stopped after %d runs (%d failed)\n", runs, failed)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	report, err := session.Runner.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			return fmt.Errorf("another run is in progress: %w", err)
		}
		if github.IsUnauthorized(err) {
			return fmt.Errorf("run failed: GitHub rejected the token, check github.token or GITHUB_TOKEN: %w", err)
		}
		return fmt.Errorf("run failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, r *driving.RunReport) {
	suffix := ""
	if r.DryRun {
		suffix = " (dry run, state not saved)"
	}
	cmd.PrintErrf("Run %s complete%s\n", r.RunID, suffix)
	cmd.PrintErrf("  Re-checked:  %d open (%d closed)\n", r.Reconciled, r.Closed)
	cmd.PrintErrf("  New:         %d pull requests on %d pages\n", r.Seen, r.PagesFetched)
	cmd.PrintErrf("  Records:     %d\n", r.Emitted)
	cmd.PrintErrf("  Cursor:      %d -> %d\n", r.PreviousCursor, r.Cursor)
	cmd.PrintErrf("  Open:        %d tracked\n", r.OpenTracked)
	cmd.PrintErrf("  Took:        %s\n", r.Duration.Round(time.Millisecond))
}
