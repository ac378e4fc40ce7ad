package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/logger"
)

var reloadForce bool

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Rebuild the corpus snapshot",
	Long: `Loads every configured table and builds a new snapshot. When the inputs
are unchanged since the last build the rebuild is skipped; use --force to
build regardless.`,
	RunE: runReload,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the snapshot whenever input files change",
	Long: `Loads the corpus, then watches the configured table files and rebuilds
the snapshot on every change until interrupted. A failed rebuild is logged
and the previous snapshot keeps serving.`,
	RunE: runWatch,
}

func init() {
	reloadCmd.Flags().BoolVarP(&reloadForce, "force", "f", false, "rebuild even when inputs are unchanged")
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(watchCmd)
}

func runReload(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	res, err := corpusService.Reload(cmd.Context(), reloadForce)
	if err != nil {
		return fmt.Errorf("failed to reload corpus: %w", err)
	}
	printReload(cmd, res)
	return nil
}

func printReload(cmd *cobra.Command, res domain.ReloadResult) {
	if !res.Reloaded {
		cmd.Println(mutedStyle.Render("Inputs unchanged, snapshot kept."))
	} else {
		cmd.Println(successStyle.Render("✓ Snapshot rebuilt"))
	}
	if res.Snapshot != nil {
		cmd.Printf("  ID:     %s\n", res.Snapshot.ID)
		cmd.Printf("  Built:  %s in %s\n", humanize.Time(res.Snapshot.BuiltAt), res.Snapshot.BuildDuration)
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	if changeNotifier == nil {
		return errors.New("change notifier not configured")
	}
	if c, ok := changeNotifier.(io.Closer); ok {
		defer c.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := corpusService.Reload(ctx, false)
	if err != nil {
		// keep watching, a later change may fix the inputs
		cmd.Println(warningStyle.Render(fmt.Sprintf("Initial load failed: %v", err)))
	} else {
		printReload(cmd, res)
	}

	cmd.Println(mutedStyle.Render("Watching for changes. Press Ctrl+C to stop."))
	if err := corpusService.Watch(ctx, changeNotifier); err != nil {
		return fmt.Errorf("failed to watch corpus: %w", err)
	}
	return nil
}

// watchInBackground keeps the snapshot current while a long-running command
// serves it, when reload.watch is on. The returned func stops the watcher
// and waits for it.
func watchInBackground(ctx context.Context) func() {
	if corpusService == nil || changeNotifier == nil || settingsService == nil {
		return func() {}
	}
	settings, err := settingsService.Get()
	if err != nil || !settings.Reload.Watch {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := corpusService.Watch(ctx, changeNotifier); err != nil {
			logger.Warn("corpus watch stopped: %v", err)
		}
	}()
	logger.Debug("watching corpus inputs in the background")

	return func() {
		cancel()
		wg.Wait()
		if c, ok := changeNotifier.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
