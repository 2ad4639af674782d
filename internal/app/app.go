// Package app wires adapters to the core services for the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/auth"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/sink"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/cli"
	"github.com/custodia-labs/sectrack/internal/connectors/github"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/services"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// Ensure Factory implements the interface.
var _ cli.Factory = (*Factory)(nil)

// Factory builds production sessions: TOML config, SQLite state and
// the GitHub connector.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a factory using authenticated default HTTP clients.
func NewFactory() *Factory {
	return &Factory{}
}

// NewFactoryWithHTTPClient creates a factory whose GitHub connector uses
// httpClient as is.
func NewFactoryWithHTTPClient(httpClient *http.Client) *Factory {
	return &Factory{httpClient: httpClient}
}

// Config opens config.toml in dir.
func (f *Factory) Config(dir string) (driven.ConfigStore, error) {
	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// Session wires one orchestrator. Records are printed to opts.Out and,
// outside dry runs, stored in the advisories table.
func (f *Factory) Session(ctx context.Context, cfg driven.ConfigStore, opts cli.SessionOptions) (*cli.Session, error) {
	ghConfig, err := github.ParseConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	settings := services.ParseSettings(cfg)

	formatName := opts.Format
	if formatName == "" {
		formatName = settings.OutputFormat
	}
	format, err := sink.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	dir := opts.DataDir
	if dir == "" {
		dir = settings.DataDir
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := sink.New(format, out)

	var (
		states  driven.StateStore = store.StateStore()
		records driven.RecordSink = sink.NewMultiSink(store.AdvisorySink(), printer)
	)
	if opts.DryRun {
		snapshot := memory.NewStateStore()
		if err := services.CopyState(ctx, snapshot, states); err != nil {
			store.Close()
			return nil, err
		}
		states = snapshot
		records = printer
	}

	client, err := f.newClient(ghConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	logger.Debug("repository %s, state %s, label %q", ghConfig.FullName(), store.Path(), settings.SecurityLabel)

	orchestrator := services.NewOrchestrator(client, states, records, services.NewRelevanceFilter(settings.SecurityLabel))
	orchestrator.SetDryRun(opts.DryRun)

	return &cli.Session{
		Runner:    orchestrator,
		Records:   store.Advisories(),
		StorePath: store.Path(),
		Close:     store.Close,
	}, nil
}

func (f *Factory) newClient(cfg *github.Config) (*github.Client, error) {
	if f.httpClient != nil {
		return github.NewClientWithHTTPClient(cfg, f.httpClient)
	}
	tokens := auth.NewTokenProvider(cfg.Token)
	if !tokens.IsAuthenticated() {
		logger.Warn("no GitHub token configured; anonymous requests are limited to 60 per hour")
	}
	return github.NewClient(cfg, tokens), nil
}
