package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

func TestReadCmd_ValidatesBeforeStarting(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "bad verse key", args: []string{"read", "--verse", "one"}, wantErr: domain.ErrInvalidInput},
		{name: "unknown verse", args: []string{"read", "--verse", "3:1"}, wantErr: domain.ErrVerseNotFound},
		{name: "unknown page", args: []string{"read", "--page", "9"}, wantErr: domain.ErrPageNotFound},
		{name: "extra args", args: []string{"read", "2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := runCmd(t, tc.args...)

			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestReadCmd_NoServices(t *testing.T) {
	SetServices(Services{})
	t.Cleanup(func() { SetServices(Services{}) })

	_, err := runCmd(t, "read")

	assert.ErrorContains(t, err, "query service not configured")
}

func TestWatchInBackground_Off(t *testing.T) {
	env := setupTestServices(t)
	notifier := &chanNotifier{events: make(chan domain.ChangeEvent)}
	SetServices(Services{Query: env.query, Corpus: env.corpus, Settings: env.settings, Notifier: notifier})

	stop := watchInBackground(context.Background())
	stop()

	assert.False(t, notifier.closed.Load(), "watch is off by default")
}

func TestWatchInBackground_ReloadsUntilStopped(t *testing.T) {
	env := setupTestServices(t)
	env.corpus.SetMinInterval(time.Millisecond)
	_, err := env.corpus.Reload(context.Background(), false)
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	settings.Reload.Watch = true
	require.NoError(t, env.settings.Save(settings))

	reloaded := make(chan domain.ReloadResult, 1)
	env.corpus.SetReloadHook(func(res domain.ReloadResult) { reloaded <- res })

	notifier := &chanNotifier{events: make(chan domain.ChangeEvent, 1)}
	SetServices(Services{Query: env.query, Corpus: env.corpus, Settings: env.settings, Notifier: notifier})

	stop := watchInBackground(context.Background())

	tables := testTables()
	tables.Verses["2:1"] = "w10 w12"
	env.source.Set(tables)
	notifier.events <- domain.ChangeEvent{Path: "verses.json", Op: "write"}

	select {
	case res := <-reloaded:
		assert.True(t, res.Reloaded)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after change")
	}
	stop()

	rec, err := env.query.VerseRecord(domain.MustParseVerseKey("2:1"))
	require.NoError(t, err)
	assert.Equal(t, "w10 w12", rec.Text)
	assert.True(t, notifier.closed.Load())
}
