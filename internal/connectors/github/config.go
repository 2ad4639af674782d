package github

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Configuration keys read by ParseConfig.
const (
	KeyOwner             = "github.owner"
	KeyRepo              = "github.repo"
	KeyBaseURL           = "github.base_url"
	KeyToken             = "github.token"
	KeyCooldown          = "sync.cooldown"
	KeyRequestsPerSecond = "sync.requests_per_second"
)

// Defaults applied when a key is absent.
const (
	DefaultOwner    = "NixOS"
	DefaultRepo     = "nixpkgs"
	DefaultCooldown = 5 * time.Minute
)

// Config holds the parsed configuration for the upstream repository.
type Config struct {
	// Owner and Repo name the single upstream repository.
	Owner string
	Repo  string

	// BaseURL overrides the API root (GitHub Enterprise, tests).
	// Empty means https://api.github.com/.
	BaseURL string

	// Token is an optional Personal Access Token.
	Token string

	// Cooldown is how long to block after a rate-limited response.
	Cooldown time.Duration

	// RequestsPerSecond throttles requests proactively. Zero disables it.
	RequestsPerSecond float64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Owner:             DefaultOwner,
		Repo:              DefaultRepo,
		Cooldown:          DefaultCooldown,
		RequestsPerSecond: ProactiveRate,
	}
}

// ParseConfig reads and validates the upstream configuration.
// All keys are optional.
func ParseConfig(store driven.ConfigStore) (*Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(store.GetString(KeyOwner)); v != "" {
		cfg.Owner = v
	}
	if v := strings.TrimSpace(store.GetString(KeyRepo)); v != "" {
		cfg.Repo = v
	}
	cfg.BaseURL = strings.TrimSpace(store.GetString(KeyBaseURL))
	cfg.Token = store.GetString(KeyToken)

	if v := strings.TrimSpace(store.GetString(KeyCooldown)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrConfigInvalidCooldown, v)
		}
		cfg.Cooldown = d
	}

	if _, ok := store.Get(KeyRequestsPerSecond); ok {
		cfg.RequestsPerSecond = store.GetFloat(KeyRequestsPerSecond)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Owner == "" || c.Repo == "" {
		return ErrConfigMissingRepository
	}
	if c.Cooldown <= 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalidCooldown, c.Cooldown)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: %v", ErrConfigInvalidRate, c.RequestsPerSecond)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrConfigInvalidBaseURL, c.BaseURL)
		}
	}
	return nil
}

// FullName returns owner/repo.
func (c *Config) FullName() string {
	return c.Owner + "/" + c.Repo
}
