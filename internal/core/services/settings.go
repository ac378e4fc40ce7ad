package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir         = "corpus.data_dir"
	keyLayout          = "corpus.layout"
	keyWords           = "corpus.words"
	keyVerses          = "corpus.verses"
	keyTranslation     = "corpus.translation"
	keyTransliteration = "corpus.transliteration"
	keyMatches         = "corpus.matches"
	keySurahs          = "corpus.surahs"
	keyWatch           = "reload.watch"
	keyMinInterval     = "reload.min_interval"
	keySimilarLimit    = "query.similar_limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Corpus: domain.CorpusSettings{
			DataDir: s.getString(keyDataDir, defaults.Corpus.DataDir),
			Layout:  s.getString(keyLayout, defaults.Corpus.Layout),
			// Optional tables have no default - empty disables them
			Words:           s.configStore.GetString(keyWords),
			Verses:          s.getString(keyVerses, defaults.Corpus.Verses),
			Translation:     s.configStore.GetString(keyTranslation),
			Transliteration: s.configStore.GetString(keyTransliteration),
			Matches:         s.getString(keyMatches, defaults.Corpus.Matches),
			Surahs:          s.getString(keySurahs, defaults.Corpus.Surahs),
		},
		Reload: domain.ReloadSettings{
			Watch:       s.getBool(keyWatch, defaults.Reload.Watch),
			MinInterval: s.getDuration(keyMinInterval, defaults.Reload.MinInterval),
		},
		Query: domain.QuerySettings{
			SimilarLimit: s.getInt(keySimilarLimit, defaults.Query.SimilarLimit),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key string
		val any
	}{
		{keyDataDir, settings.Corpus.DataDir},
		{keyLayout, settings.Corpus.Layout},
		{keyWords, settings.Corpus.Words},
		{keyVerses, settings.Corpus.Verses},
		{keyTranslation, settings.Corpus.Translation},
		{keyTransliteration, settings.Corpus.Transliteration},
		{keyMatches, settings.Corpus.Matches},
		{keySurahs, settings.Corpus.Surahs},
		{keyWatch, settings.Reload.Watch},
		{keyMinInterval, settings.Reload.MinInterval.String()},
		{keySimilarLimit, settings.Query.SimilarLimit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// SetDataDir updates the corpus data directory.
func (s *SettingsService) SetDataDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty data directory", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Corpus.DataDir = dir
	return s.Save(settings)
}

// Validate checks that the configured settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	for key, val := range map[string]string{
		keyLayout:  settings.Corpus.Layout,
		keyVerses:  settings.Corpus.Verses,
		keyMatches: settings.Corpus.Matches,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, key))
		}
	}
	if settings.Reload.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyMinInterval))
	}
	if settings.Query.SimilarLimit < domain.NoLimit {
		errs = append(errs, fmt.Errorf("%w: %s must be -1 or more", domain.ErrInvalidInput, keySimilarLimit))
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, ok := s.configStore.GetDuration(key); ok {
		return d
	}
	return defaultVal
}
