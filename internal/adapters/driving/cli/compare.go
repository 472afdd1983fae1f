package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

var compareFlags struct {
	iterations int
	seed       uint64
	workers    int
	outDir     string
	noCSV      bool
	noReport   bool
	noSample   bool
	database   string
	json       bool
	noProgress bool
}

var compareCmd = &cobra.Command{
	Use:   "compare <corpus1> <corpus2>",
	Short: "Compare the productivity of two corpora",
	Long: `Runs the full analysis over two corpora of prefix_suffix records.

Creativity and Triteness are reported three times: on the raw corpora, after
restricting both corpora to their shared vocabulary, and after resampling the
larger filtered corpus down to the size of the smaller one (sample 3).

Results are written to the output directory as CSV tables, a text report and
the last resampled draw. Use --db to also store the run in a SQLite database.
Press Ctrl+C during resampling to stop early and keep the completed draws.

Examples:
  morpho compare adult.txt child.txt
  morpho compare adult.txt child.txt -n 500 --seed 42 -o results
  morpho compare adult.txt child.txt --json --no-csv --no-report --no-sample`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.IntVarP(&compareFlags.iterations, "iterations", "n", domain.DefaultIterations, "number of resample iterations (1-1000)")
	f.Uint64Var(&compareFlags.seed, "seed", 0, "random seed for reproducible resampling")
	f.IntVar(&compareFlags.workers, "workers", 0, "concurrent resample workers (default from settings)")
	f.StringVarP(&compareFlags.outDir, "out", "o", "", "output directory (default from settings)")
	f.BoolVar(&compareFlags.noCSV, "no-csv", false, "do not write CSV tables")
	f.BoolVar(&compareFlags.noReport, "no-report", false, "do not write feedback_file.txt")
	f.BoolVar(&compareFlags.noSample, "no-sample", false, "do not write the last resampled draw")
	f.StringVar(&compareFlags.database, "db", "", "also store the run in this SQLite database")
	f.BoolVar(&compareFlags.json, "json", false, "print results as JSON")
	f.BoolVar(&compareFlags.noProgress, "no-progress", false, "hide the progress bar")
	rootCmd.AddCommand(compareCmd)
}

// compareOutput is the JSON shape of a comparison.
type compareOutput struct {
	*domain.Comparison
	Rows  []domain.ResultRow `json:"rows"`
	Files []string           `json:"files,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyCompareFlags(cmd, settings)

	progress, stopProgress := resampleProgress(!compareFlags.json && !compareFlags.noProgress)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	cmp, err := analysisService.Compare(ctx, domain.AnalysisRequest{
		FirstPath:  args[0],
		SecondPath: args[1],
		Iterations: settings.Resample.Iterations,
		Seed:       settings.Resample.Seed,
		Workers:    settings.Resample.Workers,
		Progress:   progress,
	})
	stopProgress()
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	var files []string
	if exportService != nil {
		// Exports still run after Ctrl+C so partial results are kept.
		files, err = exportService.Export(context.WithoutCancel(ctx), cmp, settings.Output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	}

	if compareFlags.json {
		data, err := json.MarshalIndent(compareOutput{Comparison: cmp, Rows: cmp.Rows(), Files: files}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printComparison(cmd, cmp, files)
	return nil
}

func applyCompareFlags(cmd *cobra.Command, settings *domain.AppSettings) {
	f := cmd.Flags()
	if f.Changed("iterations") {
		settings.Resample.Iterations = compareFlags.iterations
	}
	if f.Changed("seed") {
		seed := compareFlags.seed
		settings.Resample.Seed = &seed
	}
	if f.Changed("workers") && compareFlags.workers > 0 {
		settings.Resample.Workers = compareFlags.workers
	}
	if f.Changed("out") {
		settings.Output.Dir = compareFlags.outDir
	}
	if compareFlags.noCSV {
		settings.Output.CSV = false
	}
	if compareFlags.noReport {
		settings.Output.Report = false
	}
	if compareFlags.noSample {
		settings.Output.Sample = false
	}
	if f.Changed("db") {
		settings.Output.Database = compareFlags.database
	}
}

func printComparison(cmd *cobra.Command, cmp *domain.Comparison, files []string) {
	s := newStyles(cmd.OutOrStdout())

	cmd.Println(s.Title.Render("Morphological productivity"))
	cmd.Printf("Sample 1: %s (%d tokens)\n", cmp.First(), cmp.Unfiltered[0].Tokens)
	cmd.Printf("Sample 2: %s (%d tokens)\n", cmp.Second(), cmp.Unfiltered[1].Tokens)
	cmd.Printf("Shared prefixes: %d, shared suffixes: %d\n",
		len(cmp.Filter.SharedPrefixes), len(cmp.Filter.SharedSuffixes))

	if r := cmp.Resample; r != nil {
		cmd.Printf("Sample 3: %d tokens drawn from sample %d, %d/%d iterations, seed %d\n",
			r.DrawSize, r.Source, r.Completed, r.Iterations, r.Seed)
		if r.Clamped {
			cmd.Println(s.Warning.Render(fmt.Sprintf("Iterations clamped from %d to %d", r.Requested, r.Iterations)))
		}
		if r.Partial {
			cmd.Println(s.Warning.Render("Interrupted: sample 3 aggregates completed iterations only"))
		}
	} else {
		cmd.Println(s.Warning.Render(domain.ErrEqualSize.Error()))
	}
	cmd.Println()

	cmd.Println(s.resultTable(cmp.Rows()))

	if len(files) > 0 {
		cmd.Println()
		cmd.Println("Written:")
		for _, f := range files {
			cmd.Printf("  %s\n", s.Muted.Render(f))
		}
	}
}

// loadSettings returns stored settings, or defaults when no settings
// service is configured.
func loadSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
