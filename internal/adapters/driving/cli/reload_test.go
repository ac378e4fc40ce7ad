package cli

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

func TestReloadCmd(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "reload")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot rebuilt")

	out, err = runCmd(t, "reload")
	require.NoError(t, err)
	assert.Contains(t, out, "Inputs unchanged")

	out, err = runCmd(t, "reload", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot rebuilt")
}

func TestReloadCmd_KeepsSnapshotOnFailure(t *testing.T) {
	env := setupTestServices(t)
	_, err := runCmd(t, "reload")
	require.NoError(t, err)
	before := env.query.Snapshot()

	env.source.FailWith(domain.ErrNotReady)
	_, err = runCmd(t, "reload")

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to reload corpus")
	assert.Equal(t, before.ID, env.query.Snapshot().ID)
}

func TestReloadCmd_NoCorpusService(t *testing.T) {
	SetServices(Services{})
	t.Cleanup(func() { SetServices(Services{}) })

	_, err := runCmd(t, "reload")

	assert.ErrorContains(t, err, "corpus service not configured")
}

func TestConvertCmd(t *testing.T) {
	setupTestServices(t)
	path := filepath.Join(t.TempDir(), "layout.db")

	out, err := runCmd(t, "convert", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Layout exported")
	assert.Contains(t, out, "Lines:  6")

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	defer store.Close()

	lines, err := store.LoadLines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, lines.Len())
}

func TestConvertCmd_InvalidLayout(t *testing.T) {
	env := setupTestServices(t)
	tables := testTables()
	tables.Lines.Rows[0][2] = "footer"
	env.source.Set(tables)

	_, err := runCmd(t, "convert", filepath.Join(t.TempDir(), "layout.db"))

	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}

func TestConvertCmd_NotConfigured(t *testing.T) {
	env := setupTestServices(t)
	SetServices(Services{Query: env.query, Corpus: env.corpus})

	_, err := runCmd(t, "convert", filepath.Join(t.TempDir(), "layout.db"))

	assert.ErrorContains(t, err, "layout export not configured")
}

// chanNotifier replays events pushed through its channel.
type chanNotifier struct {
	events chan domain.ChangeEvent
	closed atomic.Bool
}

func (n *chanNotifier) Watch(context.Context) (<-chan domain.ChangeEvent, error) {
	return n.events, nil
}

func (n *chanNotifier) Close() error {
	n.closed.Store(true)
	return nil
}

var _ driven.ChangeNotifier = (*chanNotifier)(nil)

func TestWatchCmd_ReloadsOnChange(t *testing.T) {
	env := setupTestServices(t)
	env.corpus.SetMinInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan domain.ReloadResult, 1)
	env.corpus.SetReloadHook(func(res domain.ReloadResult) {
		reloaded <- res
		cancel()
	})

	notifier := &chanNotifier{events: make(chan domain.ChangeEvent, 1)}
	SetServices(Services{Query: env.query, Corpus: env.corpus, Notifier: notifier})

	go func() {
		// wait for the initial load before reporting a change
		for env.query.Snapshot() == nil {
			time.Sleep(time.Millisecond)
		}
		tables := testTables()
		tables.Verses["1:1"] = "v1 v2 v3"
		env.source.Set(tables)
		notifier.events <- domain.ChangeEvent{Path: "verses.json", Op: "write"}
	}()

	out, err := runCmdContext(ctx, t, "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Watching for changes")

	select {
	case res := <-reloaded:
		assert.True(t, res.Reloaded)
	default:
		t.Fatal("no reload after change")
	}
	assert.True(t, notifier.closed.Load())

	rec, err := env.query.VerseRecord(domain.MustParseVerseKey("1:1"))
	require.NoError(t, err)
	assert.Equal(t, "v1 v2 v3", rec.Text)
}

func TestWatchCmd_NoNotifier(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "watch")

	assert.ErrorContains(t, err, "change notifier not configured")
}
