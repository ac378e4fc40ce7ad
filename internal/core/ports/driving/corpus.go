package driving

import (
	"context"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// CorpusService loads corpus tables and publishes snapshots.
type CorpusService interface {
	// Reload loads all tables and publishes a new snapshot. Unless force is
	// set, a reload whose inputs match the published fingerprint is skipped.
	// A failed reload leaves the published snapshot in place.
	Reload(ctx context.Context, force bool) (domain.ReloadResult, error)

	// Watch reloads whenever notifier reports a change, until ctx is done.
	Watch(ctx context.Context, notifier driven.ChangeNotifier) error

	// Current describes the published snapshot, nil before the first one.
	Current() *domain.SnapshotInfo

	// ExportLayout validates the layout tables and writes them to dst.
	ExportLayout(ctx context.Context, dst driven.LayoutSink) (domain.ExportResult, error)
}
