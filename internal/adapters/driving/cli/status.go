package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved cursor and tracked open pull requests",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	session, err := openSession(ctx, SessionOptions{Out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	defer session.close()

	state, err := session.Runner.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}

	if session.StorePath != "" {
		cmd.Printf("State: %s\n", session.StorePath)
	}
	if state.Cursor == 0 {
		cmd.Println("Cursor: none (no completed run)")
	} else {
		cmd.Printf("Cursor: %d\n", state.Cursor)
	}

	cmd.Printf("Open pull requests: %d\n", state.Open.Len())
	for _, item := range state.Open.Items() {
		cmd.Printf("  #%d (id %d)\n", item.Number, item.ID)
	}

	if session.Records != nil {
		count, err := session.Records.CountRecords(ctx)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		cmd.Printf("Stored records: %d\n", count)
	}

	return nil
}
