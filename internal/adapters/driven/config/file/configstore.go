package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/config/values"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MUSHAF_"

// envKeys maps environment variables (without EnvPrefix) to config keys.
var envKeys = map[string]string{
	"DATA_DIR":        "corpus.data_dir",
	"LAYOUT":          "corpus.layout",
	"WORDS":           "corpus.words",
	"VERSES":          "corpus.verses",
	"TRANSLATION":     "corpus.translation",
	"TRANSLITERATION": "corpus.transliteration",
	"MATCHES":         "corpus.matches",
	"SURAHS":          "corpus.surahs",
	"WATCH":           "reload.watch",
	"RELOAD_INTERVAL": "reload.min_interval",
	"SIMILAR_LIMIT":   "query.similar_limit",
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the mushaf config directory.
// Dotted keys map to TOML tables, so "corpus.data_dir" is data_dir under [corpus].
//
// Environment overrides applied with ApplyEnv shadow file values on read
// and are never written back.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	env      map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.mushaf/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".mushaf")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
		env:      make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.filePath, err)
	}

	return s, nil
}

// ApplyEnv loads dotenv files (missing files are skipped) into the process
// environment without replacing variables already set, then records every
// MUSHAF_* variable as an override. It returns the overridden keys.
func (s *ConfigStore) ApplyEnv(dotenvFiles ...string) []string {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var applied []string
	for name, key := range envKeys {
		if val, ok := os.LookupEnv(EnvPrefix + name); ok {
			s.env[key] = val
			applied = append(applied, key)
		}
	}
	sort.Strings(applied)
	return applied
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.env[key]; ok {
		return val, true
	}
	val, ok := s.data[key]
	return val, ok
}

// GetString returns the string at key, or "" when it is unset or not a
// string.
func (s *ConfigStore) GetString(key string) string {
	str, _ := values.String(s.lookup(key))
	return str
}

// GetInt returns the integer at key. Numeric strings, as set from the
// environment, are parsed. Anything else reads as 0.
func (s *ConfigStore) GetInt(key string) int {
	n, _ := values.Int(s.lookup(key))
	return n
}

// GetBool returns the boolean at key. Strings accepted by
// strconv.ParseBool are parsed. Anything else reads as false.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := values.Bool(s.lookup(key))
	return b
}

// GetDuration returns the duration at key. Strings are parsed as Go
// durations, falling back to whole seconds; numbers are seconds.
func (s *ConfigStore) GetDuration(key string) (time.Duration, bool) {
	return values.Duration(s.lookup(key))
}

func (s *ConfigStore) lookup(key string) any {
	val, _ := s.Get(key)
	return val
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.data = make(map[string]any)
		return nil
	}
	if err != nil {
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// nestMap is the inverse of flattenMap. A key whose prefix already holds a
// plain value stays dotted.
func nestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// Shorter keys first so plain values claim their names before tables.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	result := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := result
		placed := true
		for _, p := range parts[:len(parts)-1] {
			next, exists := node[p]
			if !exists {
				child := make(map[string]any)
				node[p] = child
				node = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				placed = false
				break
			}
			node = child
		}
		if placed {
			node[parts[len(parts)-1]] = flat[key]
		} else {
			result[key] = flat[key]
		}
	}
	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
