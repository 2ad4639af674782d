package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/config"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds configuration in a map. Nothing is persisted, so Save and
// Load do nothing. Used by tests and as the defaults-only configuration.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreFrom(nil)
}

// NewConfigStoreFrom returns a store holding a copy of values.
func NewConfigStoreFrom(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: maps.Clone(values)}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s
}

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

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path is ":memory:" since there is no file.
func (s *ConfigStore) Path() string { return ":memory:" }
