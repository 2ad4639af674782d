package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/config"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const fileName = "config.toml"

// ConfigStore keeps sectrack settings in a TOML file.
// Tables are exposed as dot keys: [github] owner = "x" is "github.owner".
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// DefaultDir returns ~/.sectrack.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate home directory: %w", err)
	}
	return filepath.Join(home, ".sectrack"), nil
}

// NewConfigStore opens config.toml in dir, creating dir if needed.
// An empty dir means DefaultDir.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("config: create %s: %w", dir, err)
	}

	s := &ConfigStore{path: filepath.Join(dir, fileName)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string { return config.AsString(s.Get(key)) }

func (s *ConfigStore) GetInt(key string) int { return config.AsInt(s.Get(key)) }

func (s *ConfigStore) GetFloat(key string) float64 { return config.AsFloat(s.Get(key)) }

func (s *ConfigStore) GetBool(key string) bool { return config.AsBool(s.Get(key)) }

// Set stores value under key and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.write()
}

// Save rewrites the file from memory.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write replaces the file through a temp file in the same directory.
// The file may hold a token, so it is only readable by the owner.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(nest(s.values))
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	return nil
}

// Load re-reads the file. A missing file is an empty configuration.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.values = make(map[string]any)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", s.path, err)
	}

	tables := make(map[string]any)
	if err := toml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("config: parse %s: %w", s.path, err)
	}
	s.values = flatten(tables)
	return nil
}

// Path returns the file location.
func (s *ConfigStore) Path() string {
	return s.path
}
