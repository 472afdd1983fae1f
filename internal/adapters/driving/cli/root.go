// Package cli provides the cobra command tree of the morpho binary.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/morpho/internal/core/ports/driving"
	"github.com/custodia-labs/morpho/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	exportService   driving.ExportService
	runService      driving.RunService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "morpho",
	Short: "Compare morphological productivity between two corpora",
	Long: `morpho measures how creatively prefixes and suffixes combine in two
corpora of prefix_suffix constructions.

For each corpus it reports Creativity (CRE, the number of distinct partners
a morpheme combines with) and Triteness (TRI, the share of morphemes used
with a single partner). It then controls for vocabulary by restricting both
corpora to shared morphemes, and for sample size by repeatedly resampling
the larger filtered corpus down to the size of the smaller one.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
}

// Services groups the core services the commands run against.
type Services struct {
	Analysis driving.AnalysisService
	Settings driving.SettingsService
	Export   driving.ExportService
	Runs     driving.RunService
}

// SetServices injects the core services.
func SetServices(s Services) {
	analysisService = s.Analysis
	settingsService = s.Settings
	exportService = s.Export
	runService = s.Runs
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
