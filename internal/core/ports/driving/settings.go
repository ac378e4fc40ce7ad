package driving

import "github.com/custodia-labs/mushaf/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetDataDir updates the corpus data directory.
	SetDataDir(dir string) error

	// Validate checks that the configured settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
