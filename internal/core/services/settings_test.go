package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("corpus.data_dir", "/srv/quran")
	_ = store.Set("corpus.translation", "en-sahih.json")
	_ = store.Set("reload.watch", "true")
	_ = store.Set("reload.min_interval", "500ms")
	_ = store.Set("query.similar_limit", int64(25))

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/quran", settings.Corpus.DataDir)
	assert.Equal(t, "en-sahih.json", settings.Corpus.Translation)
	assert.Equal(t, "matching-ayah.json", settings.Corpus.Matches)
	assert.True(t, settings.Reload.Watch)
	assert.Equal(t, 500*time.Millisecond, settings.Reload.MinInterval)
	assert.Equal(t, 25, settings.Query.SimilarLimit)
}

func TestSettingsService_Get_DurationForms(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"duration string", "1m", time.Minute},
		{"whole seconds", int64(3), 3 * time.Second},
		{"invalid string", "soon", 2 * time.Second},
		{"wrong type", true, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			_ = store.Set("reload.min_interval", tt.value)

			settings, err := NewSettingsService(store).Get()
			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.Reload.MinInterval)
		})
	}
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultSettings()
	want.Corpus.Words = "words.json"
	want.Reload.MinInterval = 5 * time.Second
	want.Query.SimilarLimit = domain.NoLimit

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_SetDataDir(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetDataDir("/data/quran"))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "/data/quran", settings.Corpus.DataDir)

	assert.ErrorIs(t, service.SetDataDir(""), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	assert.NoError(t, service.Validate())

	_ = store.Set("query.similar_limit", -5)
	_ = store.Set("reload.min_interval", "-1s")
	err := service.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "query.similar_limit")
	assert.Contains(t, err.Error(), "reload.min_interval")
}
