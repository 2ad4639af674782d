package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/auth"
	"github.com/custodia-labs/sectrack/internal/adapters/driven/sink"
	"github.com/custodia-labs/sectrack/internal/connectors/github"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/services"
)

// configKey describes a settable key and how to parse its value.
type configKey struct {
	help  string
	parse func(string) (any, error)
}

var configKeys = map[string]configKey{
	github.KeyOwner:             {"repository owner", parseString},
	github.KeyRepo:              {"repository name", parseString},
	github.KeyBaseURL:           {"API root for GitHub Enterprise", parseString},
	github.KeyToken:             {"personal access token", parseString},
	github.KeyCooldown:          {"wait after a rate-limited response, e.g. 5m", parseDuration},
	github.KeyRequestsPerSecond: {"proactive request rate, 0 disables", parseFloat},
	services.KeySecurityLabel:   {"label marking security pull requests", parseString},
	services.KeyDataDir:         {"state directory", parseString},
	services.KeyOutputFormat:    {"auto, json or text", parseFormat},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `View and change sectrack configuration stored in config.toml.

Keys use dot notation matching the TOML tables, e.g. github.owner.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store a GitHub token, reading it without echo",
	Args:  cobra.NoArgs,
	RunE:  runConfigToken,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := openConfig()
		if err != nil {
			return err
		}
		cmd.Println(cfg.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTokenCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	gh, err := github.ParseConfig(cfg)
	if err != nil {
		cmd.Printf("Warning: %v\n\n", err)
		gh = github.DefaultConfig()
	}
	settings := services.ParseSettings(cfg)

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[GitHub]")
	cmd.Printf("  Repository: %s\n", gh.FullName())
	if gh.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", gh.BaseURL)
	}
	switch {
	case gh.Token != "":
		cmd.Printf("  Token: %s\n", maskToken(gh.Token))
	case os.Getenv(auth.EnvToken) != "":
		cmd.Printf("  Token: from $%s\n", auth.EnvToken)
	default:
		cmd.Println("  Token: (not set, anonymous access)")
	}
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Security label: %q\n", settings.SecurityLabel)
	cmd.Printf("  Rate-limit cooldown: %s\n", gh.Cooldown)
	cmd.Printf("  Requests per second: %g\n", gh.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Storage]")
	dir := settings.DataDir
	if dataDir != "" {
		dir = dataDir
	}
	if dir == "" {
		dir = "~/.sectrack/data (default)"
	}
	cmd.Printf("  Data directory: %s\n", dir)
	cmd.Printf("  Output format: %s\n", settings.OutputFormat)
	cmd.Println()

	cmd.Printf("Config file: %s\n", cfg.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	def, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown key %q; known keys:\n%s", key, knownKeys())
	}
	value, err := def.parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	cfg, err := openConfig()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	if key == github.KeyToken {
		cmd.Printf("Set %s = %s\n", key, maskToken(raw))
	} else {
		cmd.Printf("Set %s = %v\n", key, value)
	}
	return nil
}

func runConfigToken(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	cmd.Print("GitHub token: ")
	token, err := readSecret(cmd)
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if token == "" {
		return errors.New("no token entered")
	}

	return storeToken(cmd, cfg, token)
}

func storeToken(cmd *cobra.Command, cfg driven.ConfigStore, token string) error {
	if err := cfg.Set(github.KeyToken, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	cmd.Printf("Token %s saved to %s\n", maskToken(token), cfg.Path())
	return nil
}

// readSecret reads a line without echo on a terminal, or plainly otherwise.
func readSecret(cmd *cobra.Command) (string, error) {
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		secret, err := term.ReadPassword(int(in.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func knownKeys() string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-26s %s\n", k, configKeys[k].help)
	}
	return b.String()
}

func parseString(s string) (any, error) {
	return strings.TrimSpace(s), nil
}

func parseDuration(s string) (any, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	if d <= 0 {
		return nil, errors.New("must be positive")
	}
	return d.String(), nil
}

func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, errors.New("must not be negative")
	}
	return f, nil
}

func parseFormat(s string) (any, error) {
	f, err := sink.ParseFormat(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil, err
	}
	return string(f), nil
}
