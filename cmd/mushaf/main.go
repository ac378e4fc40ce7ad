// Command mushaf queries a page-laid-out Quran corpus.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mushaf/internal/adapters/driven/watch"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/cli"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/core/services"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	if err := cli.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func bootstrap(_ context.Context, opts cli.Options) (cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open config: %w", err)
	}
	if keys := configStore.ApplyEnv(".env"); len(keys) > 0 {
		logger.Debug("environment overrides: %v", keys)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, fmt.Errorf("read settings: %w", err)
	}
	if opts.DataDir != "" {
		settings.Corpus.DataDir = opts.DataDir
	}
	logger.Debug("corpus data dir %s", settings.Corpus.DataDir)

	source := jsonfile.New(settings.Corpus)
	queryService := services.NewQueryService()
	corpusService := services.NewCorpusService(queryService, source, source, source)
	corpusService.SetFingerprinter(source)
	corpusService.SetMinInterval(settings.Reload.MinInterval)
	corpusService.SetReloadHook(func(res domain.ReloadResult) {
		logger.Info("published snapshot %s in %s", res.Snapshot.ID, res.Snapshot.BuildDuration)
	})

	return cli.Services{
		Query:    queryService,
		Corpus:   corpusService,
		Settings: settingsService,
		Notifier: watch.New(settings.Corpus),
		OpenSink: func(path string) (driven.LayoutSink, error) {
			return sqlite.Create(path)
		},
	}, nil
}
