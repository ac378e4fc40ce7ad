package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

func setupDir(t *testing.T) (string, domain.CorpusSettings) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "verses.json"), []byte("{}"), 0o644))
	return dir, domain.CorpusSettings{DataDir: dir, Layout: "layout.json", Verses: "verses.json"}
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports writes to corpus files", func(t *testing.T) {
		dir, settings := setupDir(t)
		w := New(settings)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(filepath.Join(dir, "verses.json"), []byte(`{"1:1": "x"}`), 0o644)
		}()

		select {
		case ev := <-events:
			assert.Equal(t, "verses.json", filepath.Base(ev.Path))
			assert.Contains(t, []string{OpWrite, OpCreate}, ev.Op)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change event")
		}
	})

	t.Run("ignores other files", func(t *testing.T) {
		dir, settings := setupDir(t)
		w := New(settings)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

		select {
		case ev := <-events:
			t.Fatalf("unexpected event %+v", ev)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		_, settings := setupDir(t)
		w := New(settings)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		events, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-events:
			if ok {
				for range events {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		w := New(domain.CorpusSettings{DataDir: "/non/existent/path", Layout: "layout.json"})

		events, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, events)
	})

	t.Run("returns error with nothing to watch", func(t *testing.T) {
		_, err := New(domain.CorpusSettings{}).Watch(context.Background())
		assert.Error(t, err)
	})

	t.Run("returns error when closed", func(t *testing.T) {
		_, settings := setupDir(t)
		w := New(settings)
		require.NoError(t, w.Close())

		events, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, ErrClosed)
		assert.Nil(t, events)
	})
}

func TestWatcher_Close(t *testing.T) {
	_, settings := setupDir(t)
	w := New(settings)

	events, err := w.Watch(context.Background())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	select {
	case _, ok := <-events:
		if ok {
			for range events {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("channel did not close after Close")
	}
}

func TestHandleEvent(t *testing.T) {
	dir, settings := setupDir(t)
	w := New(settings)
	target := filepath.Join(dir, "layout.json")

	tests := []struct {
		name   string
		path   string
		op     fsnotify.Op
		wantOp string
	}{
		{"create", target, fsnotify.Create, OpCreate},
		{"write", target, fsnotify.Write, OpWrite},
		{"remove", target, fsnotify.Remove, OpRemove},
		{"rename", target, fsnotify.Rename, OpRename},
		{"write and chmod", target, fsnotify.Write | fsnotify.Chmod, OpWrite},
		{"chmod only", target, fsnotify.Chmod, ""},
		{"unrelated file", filepath.Join(dir, "other.json"), fsnotify.Write, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op})

			if tt.wantOp == "" {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.wantOp, change.Op)
			assert.Equal(t, target, change.Path)
		})
	}
}

func TestNew_DistinctDirectories(t *testing.T) {
	other := t.TempDir()
	settings := domain.CorpusSettings{
		DataDir: "/data",
		Layout:  "layout.json",
		Verses:  "verses.json",
		Matches: filepath.Join(other, "matches.json"),
	}

	w := New(settings)

	assert.Len(t, w.files, 3)
	assert.ElementsMatch(t, []string{"/data", other}, w.dirs)
}
