// Package cli implements the mushaf command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
	"github.com/custodia-labs/mushaf/internal/logger"
)

var version = "dev"

// Services wired into the commands.
var (
	queryService    driving.QueryService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
	changeNotifier  driven.ChangeNotifier
	openLayoutSink  func(path string) (driven.LayoutSink, error)
)

// Options are the global flags handed to the bootstrap function.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.mushaf.
	ConfigDir string

	// DataDir overrides the configured corpus directory when set.
	DataDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services are the ports the commands drive.
type Services struct {
	Query    driving.QueryService
	Corpus   driving.CorpusService
	Settings driving.SettingsService
	Notifier driven.ChangeNotifier

	// OpenSink creates a layout database for the convert command.
	OpenSink func(path string) (driven.LayoutSink, error)
}

// Bootstrap builds the services once the global flags are known.
type Bootstrap func(ctx context.Context, opts Options) (Services, error)

var (
	bootstrap  Bootstrap
	booted     bool
	globalOpts Options
)

var rootCmd = &cobra.Command{
	Use:   "mushaf",
	Short: "Query a page-laid-out Quran corpus",
	Long: `mushaf loads a printed-page layout of the Quran together with verse text,
translations and the similar-verse table, and answers page, word and
similarity queries against an immutable in-memory snapshot.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(globalOpts.Verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigDir, "config", "", "config directory (default ~/.mushaf)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.DataDir, "data-dir", "", "corpus data directory")
}

// SetVersion sets the version reported by the version command and the
// MCP server.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds the services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
	booted = false
}

// SetServices wires services directly, bypassing the bootstrap.
func SetServices(s Services) {
	queryService = s.Query
	corpusService = s.Corpus
	settingsService = s.Settings
	changeNotifier = s.Notifier
	openLayoutSink = s.OpenSink
	booted = true
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ensureServices runs the bootstrap on first use.
func ensureServices(cmd *cobra.Command) error {
	if booted || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(cmd.Context(), globalOpts)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(s)
	return nil
}

// requireCorpus makes sure a snapshot is published before a query runs.
func requireCorpus(cmd *cobra.Command) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if queryService == nil {
		return errors.New("query service not configured")
	}
	if queryService.Snapshot() != nil || corpusService == nil {
		return nil
	}
	if _, err := corpusService.Reload(cmd.Context(), false); err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	return nil
}
