package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/sink"
)

var (
	recordsLimit  int
	recordsFormat string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List stored security records",
	Long: `Lists the latest record stored for each security pull request,
most recently extracted first.`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 20, "maximum records to list (0 for all)")
	recordsCmd.Flags().StringVarP(&recordsFormat, "format", "f", "auto", "record format: auto, json or text")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, _ []string) error {
	format, err := sink.ParseFormat(recordsFormat)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	session, err := openSession(ctx, SessionOptions{Out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	defer session.close()

	if session.Records == nil {
		return errors.New("no record store configured")
	}

	records, err := session.Records.ListRecords(ctx, recordsLimit)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	out := sink.New(format, cmd.OutOrStdout())
	for _, r := range records {
		if err := out.Emit(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
