package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set("corpus.translation", "en-sahih.json"))

	out, err := runCmd(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Corpus]")
	assert.Contains(t, out, "qpc-v2-15-lines.db.json")
	assert.Contains(t, out, "en-sahih.json")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "Similar limit:   10")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowNoLimit(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set("query.similar_limit", -1))

	out, err := runCmd(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Similar limit:   all")
}

func TestSettingsCmd_Validate(t *testing.T) {
	env := setupTestServices(t)

	out, err := runCmd(t, "settings", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	require.NoError(t, env.config.Set("query.similar_limit", -5))
	_, err = runCmd(t, "settings", "validate")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_DataDir(t *testing.T) {
	env := setupTestServices(t)

	out, err := runCmd(t, "settings", "data-dir", "/srv/quran")
	require.NoError(t, err)
	assert.Contains(t, out, "/srv/quran")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "/srv/quran", settings.Corpus.DataDir)
}

func TestSettingsCmd_SimilarLimit(t *testing.T) {
	env := setupTestServices(t)

	_, err := runCmd(t, "settings", "similar-limit", "25")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 25, settings.Query.SimilarLimit)

	_, err = runCmd(t, "settings", "similar-limit", "--", "-2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runCmd(t, "settings", "similar-limit", "many")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Watch(t *testing.T) {
	env := setupTestServices(t)

	out, err := runCmd(t, "settings", "watch", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Watch on")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.True(t, settings.Reload.Watch)

	_, err = runCmd(t, "settings", "watch", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})
	t.Cleanup(func() { SetServices(Services{}) })

	_, err := runCmd(t, "settings")

	assert.ErrorContains(t, err, "settings service not configured")
}

func TestOrUnset(t *testing.T) {
	assert.Equal(t, "(not set)", orUnset(""))
	assert.Equal(t, "a.json", orUnset("a.json"))
}
