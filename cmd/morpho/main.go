// Command morpho measures the morphological productivity of prefix_suffix corpora.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/morpho/internal/adapters/driven/config/file"
	corpusfile "github.com/custodia-labs/morpho/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export"
	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/morpho/internal/adapters/driving/cli"
	"github.com/custodia-labs/morpho/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// configDirEnv overrides the config directory (default ~/.morpho).
const configDirEnv = "MORPHO_CONFIG_DIR"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore(os.Getenv(configDirEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		return err
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load settings: %v\n", err)
		return err
	}

	codec := corpusfile.NewCodec()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Analysis: services.NewAnalysisService(codec, codec, services.NewResampler(settings.Resample.Workers)),
		Settings: settingsService,
		Export:   services.NewExportService(export.NewFactory(codec)),
		Runs:     services.NewRunService(sqlite.OpenExisting),
	})

	return cli.Execute()
}
