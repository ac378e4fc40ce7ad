package driven

import "time"

// ConfigStore holds the flat, dot-keyed settings ("corpus.data_dir",
// "reload.min_interval"). Implementations own persistence and coerce
// loosely typed values, such as strings from the environment, on read.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false when the key is missing or not a boolean.
	GetBool(key string) bool

	// GetDuration accepts Go duration strings ("500ms") or whole seconds.
	// ok is false when the key is missing or the value does not parse.
	GetDuration(key string) (d time.Duration, ok bool)

	// Set stores a value. File-backed stores persist immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns where the configuration lives.
	Path() string
}
