package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui"
	"github.com/custodia-labs/sectrack/internal/logger"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored security records interactively",
	Long: `Opens a terminal browser over the stored records.

Keys: enter shows a record, esc goes back, s runs a sync, r reloads, q quits.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	// The screen belongs to the browser, so records from runs are not printed.
	session, err := openSession(ctx, SessionOptions{Out: io.Discard})
	if err != nil {
		return err
	}
	defer session.close()

	if session.Records == nil {
		return errors.New("no record store configured")
	}

	// Request and cooldown lines would draw over the screen.
	defer logger.SetOutput(logger.SetOutput(io.Discard))

	app, err := tui.NewApp(ctx, &tui.Ports{
		Runner:  session.Runner,
		Records: session.Records,
	})
	if err != nil {
		return err
	}
	return app.Run()
}
