package memory

import (
	"maps"
	"sync"
	"time"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/config/values"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory for tests and embedding. Typed
// getters follow the same conversions as the TOML store, so values copied
// from flags or the environment read back typed.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreFrom(nil)
}

// NewConfigStoreFrom returns a store holding a copy of initial.
func NewConfigStoreFrom(initial map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(initial))}
	maps.Copy(s.values, initial)
	return s
}

// Get returns the raw value at key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := values.String(s.lookup(key))
	return v
}

func (s *ConfigStore) GetInt(key string) int {
	v, _ := values.Int(s.lookup(key))
	return v
}

func (s *ConfigStore) GetBool(key string) bool {
	v, _ := values.Bool(s.lookup(key))
	return v
}

func (s *ConfigStore) GetDuration(key string) (time.Duration, bool) {
	return values.Duration(s.lookup(key))
}

func (s *ConfigStore) lookup(key string) any {
	v, _ := s.Get(key)
	return v
}

// Set stores value at key. It never fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
