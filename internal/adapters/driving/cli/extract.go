package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/sink"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/services"
)

var (
	extractTitle    string
	extractBody     string
	extractBodyFile string
	extractFormat   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract CVEs and versions from arbitrary text",
	Long: `Runs the record extractor on a title and body without contacting GitHub.
Useful for checking how a pull request title will be parsed.

Use --body-file - to read the body from stdin.`,
	Example: `  sectrack extract --title "openssl: 3.0.1 -> 3.0.2" --body "Fixes CVE-2024-0001"`,
	Args:    cobra.NoArgs,
	RunE:    runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTitle, "title", "t", "", "pull request title")
	extractCmd.Flags().StringVarP(&extractBody, "body", "b", "", "pull request description")
	extractCmd.Flags().StringVar(&extractBodyFile, "body-file", "", "read the description from a file (- for stdin)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "auto", "record format: auto, json or text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	format, err := sink.ParseFormat(extractFormat)
	if err != nil {
		return err
	}

	body := extractBody
	if extractBodyFile != "" {
		if body, err = readBody(cmd, extractBodyFile); err != nil {
			return err
		}
	}

	if extractTitle == "" && body == "" {
		return errors.New("nothing to extract: pass --title and/or --body")
	}

	record := services.NewExtractor().Extract(&domain.PullRequest{Title: extractTitle, Body: body})
	record.ExtractedAt = time.Now().UTC()

	return sink.New(format, cmd.OutOrStdout()).Emit(commandContext(cmd), record)
}

func readBody(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(data), nil
}
