package cli

import (
	"context"
	"errors"
	"io"

	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// SessionOptions describe the session a command needs.
type SessionOptions struct {
	// DataDir overrides storage.data_dir when set.
	DataDir string

	// DryRun runs against a copy of the persisted state.
	DryRun bool

	// Format is the output format for records (auto, json, text).
	Format string

	// Out receives emitted records.
	Out io.Writer
}

// Session bundles the services a command works with.
type Session struct {
	// Runner performs and reports on sync runs.
	Runner driving.SyncRunner

	// Records reads back persisted records. May be nil.
	Records driven.RecordReader

	// StorePath locates the durable state, for display.
	StorePath string

	// Close releases the session's resources.
	Close func() error
}

// Factory builds configuration and sessions for commands.
type Factory interface {
	// Config opens the configuration store in dir (empty for the default).
	Config(dir string) (driven.ConfigStore, error)

	// Session wires the core services from configuration.
	Session(ctx context.Context, cfg driven.ConfigStore, opts SessionOptions) (*Session, error)
}

var factory Factory

// SetFactory installs the factory used by commands.
func SetFactory(f Factory) {
	factory = f
}

var errNotConfigured = errors.New("sectrack is not wired: no factory configured")

func openConfig() (driven.ConfigStore, error) {
	if factory == nil {
		return nil, errNotConfigured
	}
	return factory.Config(configDir)
}

func openSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	cfg, err := openConfig()
	if err != nil {
		return nil, err
	}
	if opts.DataDir == "" {
		opts.DataDir = dataDir
	}
	return factory.Session(ctx, cfg, opts)
}

func (s *Session) close() {
	if s.Close != nil {
		_ = s.Close()
	}
}
