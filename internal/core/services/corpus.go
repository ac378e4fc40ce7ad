package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// DefaultMinReloadInterval spaces out rebuilds triggered by file changes.
const DefaultMinReloadInterval = 2 * time.Second

// CorpusService loads tables from driven sources and publishes snapshots
// through a QueryService.
type CorpusService struct {
	query   *QueryService
	layout  driven.LayoutSource
	text    driven.TextSource
	matches driven.MatchSource

	fingerprinter driven.Fingerprinter
	minInterval   time.Duration
	onReload      func(domain.ReloadResult)

	// serialises reloads; queries never take it
	mu sync.Mutex
}

// NewCorpusService creates a corpus service publishing into query.
func NewCorpusService(
	query *QueryService,
	layout driven.LayoutSource,
	text driven.TextSource,
	matches driven.MatchSource,
) *CorpusService {
	return &CorpusService{
		query:       query,
		layout:      layout,
		text:        text,
		matches:     matches,
		minInterval: DefaultMinReloadInterval,
	}
}

// SetFingerprinter enables skipping reloads of unchanged inputs.
func (s *CorpusService) SetFingerprinter(f driven.Fingerprinter) {
	s.fingerprinter = f
}

// SetMinInterval sets the minimum time between watch-triggered reloads.
func (s *CorpusService) SetMinInterval(d time.Duration) {
	s.minInterval = d
}

// SetReloadHook registers fn to be called after every watch-triggered
// reload that published a new snapshot.
func (s *CorpusService) SetReloadHook(fn func(domain.ReloadResult)) {
	s.onReload = fn
}

// Current describes the published snapshot, nil before the first one.
func (s *CorpusService) Current() *domain.SnapshotInfo {
	return s.query.Snapshot()
}

// Reload loads every table and publishes a new snapshot.
func (s *CorpusService) Reload(ctx context.Context, force bool) (domain.ReloadResult, error) {
	if s.layout == nil || s.text == nil || s.matches == nil {
		return domain.ReloadResult{}, fmt.Errorf("reload corpus: %w: table sources not configured", domain.ErrNotImplemented)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.query.Snapshot()
	fingerprint := s.fingerprint(ctx)
	if !force && fingerprint != "" && current != nil && current.Fingerprint == fingerprint {
		logger.Debug("inputs unchanged (%s), keeping snapshot %s", fingerprint, current.ID)
		return domain.ReloadResult{Snapshot: current}, nil
	}

	tables, err := s.loadTables(ctx)
	if err != nil {
		return domain.ReloadResult{Snapshot: current}, fmt.Errorf("load tables: %w", err)
	}
	tables.Fingerprint = fingerprint

	snap, err := s.query.Rebuild(ctx, tables)
	if err != nil {
		return domain.ReloadResult{Snapshot: current}, fmt.Errorf("rebuild snapshot: %w", err)
	}
	info := snap.Info()
	return domain.ReloadResult{Reloaded: true, Snapshot: &info}, nil
}

func (s *CorpusService) fingerprint(ctx context.Context) string {
	if s.fingerprinter == nil {
		return ""
	}
	fp, err := s.fingerprinter.Fingerprint(ctx)
	if err != nil {
		logger.Warn("fingerprint inputs: %v", err)
		return ""
	}
	return fp
}

// loadTables reads all sources concurrently.
func (s *CorpusService) loadTables(ctx context.Context) (domain.Tables, error) {
	defer logger.Timed("load tables")()

	var t domain.Tables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		t.Lines, t.Words, err = s.layout.LoadLayout(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.Verses, err = s.text.LoadVerses(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.Translations, err = s.text.LoadTranslations(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.Transliterations, err = s.text.LoadTransliterations(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.Surahs, err = s.text.LoadSurahs(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.Matches, err = s.matches.LoadMatches(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Tables{}, err
	}
	logger.Debug("loaded %s layout rows, %s verses, %s match sources",
		logger.Count(t.Lines.Len()), logger.Count(len(t.Verses)), logger.Count(len(t.Matches)))
	return t, nil
}

// Watch reloads on every change notifier reports until ctx is cancelled.
// Bursts of events are coalesced and reloads are spaced by the minimum
// interval. A failed reload is logged and the old snapshot keeps serving.
func (s *CorpusService) Watch(ctx context.Context, notifier driven.ChangeNotifier) error {
	events, err := notifier.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch corpus: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(s.minInterval), 1)
	for {
		var ev domain.ChangeEvent
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case ev, ok = <-events:
			if !ok {
				return nil
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		drained := drain(events)
		logger.Debug("change %s %s (+%d more), reloading", ev.Op, ev.Path, drained)

		res, err := s.Reload(ctx, false)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			serving := "no snapshot"
			if res.Snapshot != nil {
				serving = "snapshot " + res.Snapshot.ID
			}
			logger.Error("reload after change to %s failed, still serving %s: %v", ev.Path, serving, err)
			continue
		}
		if res.Reloaded && s.onReload != nil {
			s.onReload(res)
		}
	}
}

// drain discards queued events and returns how many there were.
func drain(events <-chan domain.ChangeEvent) int {
	n := 0
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}
