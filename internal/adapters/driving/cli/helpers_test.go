package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// mockRunner implements driving.SyncRunner for testing.
type mockRunner struct {
	report *driving.RunReport
	runErr error
	state  *domain.SyncState
	runs   int
}

func (m *mockRunner) Run(_ context.Context) (*driving.RunReport, error) {
	m.runs++
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.report, nil
}

func (m *mockRunner) Status(_ context.Context) (*domain.SyncState, error) {
	if m.state == nil {
		return &domain.SyncState{Open: domain.NewOpenSet()}, nil
	}
	return m.state, nil
}

// mockFactory hands out a file config in a temp dir and a mock runner.
type mockFactory struct {
	configDir  string
	runner     *mockRunner
	records    *memory.RecordSink
	sessionErr error

	opts   SessionOptions
	closed int
}

func (f *mockFactory) Config(dir string) (driven.ConfigStore, error) {
	if dir == "" {
		dir = f.configDir
	}
	return file.NewConfigStore(dir)
}

func (f *mockFactory) Session(_ context.Context, _ driven.ConfigStore, opts SessionOptions) (*Session, error) {
	f.opts = opts
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	session := &Session{
		Runner:    f.runner,
		StorePath: "/var/lib/sectrack/state.db",
		Close: func() error {
			f.closed++
			return nil
		},
	}
	if f.records != nil {
		session.Records = f.records
	}
	return session, nil
}

func resetFlags() {
	verbose = false
	configDir = ""
	dataDir = ""
	runDryRun = false
	runFormat = ""
	runEvery = 0
	extractTitle = ""
	extractBody = ""
	extractBodyFile = ""
	extractFormat = "auto"
	recordsLimit = 20
	recordsFormat = "auto"
	mcpPort = 0
}

// resetContexts clears the context cobra stored on every command during an
// earlier Execute. Subcommands only inherit the root context while theirs is nil.
func resetContexts(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck
	for _, sub := range cmd.Commands() {
		resetContexts(sub)
	}
}

func setupCLITest(t *testing.T) *mockFactory {
	t.Helper()

	f := &mockFactory{
		configDir: t.TempDir(),
		runner:    &mockRunner{},
		records:   memory.NewRecordSink(),
	}

	oldFactory := factory
	factory = f
	resetFlags()
	resetContexts(rootCmd)

	t.Cleanup(func() {
		factory = oldFactory
		resetFlags()
		resetContexts(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return f
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, in io.Reader, args ...string) (string, string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if in != nil {
		rootCmd.SetIn(in)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

var errBoom = errors.New("boom")
