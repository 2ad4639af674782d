package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/logger"
)

var version = "dev"

// Global flag values.
var (
	verbose   bool
	configDir string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "sectrack",
	Short: "Track security fixes landing in an upstream GitHub repository",
	Long: `sectrack incrementally ingests pull requests from one GitHub repository,
picks out the ones carrying the security label and extracts CVE identifiers,
the package name and the affected and fixed versions from their titles.

State is kept between runs so that every pull request is seen once and
open security fixes are re-checked until they close.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sectrack)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "state directory (overrides storage.data_dir)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
