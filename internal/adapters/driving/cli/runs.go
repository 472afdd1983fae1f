package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

var (
	runsDatabase string
	runsJSON     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect comparisons stored in a results database",
	Long: `Lists and shows runs written by "morpho compare --db".

The database defaults to the output.database setting.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the result table of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDatabase, "db", "", "results database (default from settings)")
	runsCmd.PersistentFlags().BoolVar(&runsJSON, "json", false, "output as JSON")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runsDatabasePath() (string, error) {
	if runsDatabase != "" {
		return runsDatabase, nil
	}
	settings, err := loadSettings()
	if err != nil {
		return "", err
	}
	if settings.Output.Database == "" {
		return "", errors.New("no results database: pass --db or set output.database")
	}
	return settings.Output.Database, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}
	db, err := runsDatabasePath()
	if err != nil {
		return err
	}

	runs, err := runService.List(commandContext(cmd), db)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if runsJSON {
		return printJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No runs stored.")
		return nil
	}

	s := newStyles(cmd.OutOrStdout())
	t := s.table("ID", "Created", "Sample 1", "Sample 2", "Iterations", "Seed")
	for _, r := range runs {
		iterations, seed := "-", "-"
		if !r.EqualSize {
			iterations = fmt.Sprintf("%d/%d", r.Completed, r.Iterations)
			seed = strconv.FormatUint(r.Seed, 10)
		}
		t.Row(r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.First, r.Second, iterations, seed)
	}
	cmd.Println(t.String())
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}
	db, err := runsDatabasePath()
	if err != nil {
		return err
	}

	run, err := runService.Get(commandContext(cmd), db, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %q not found in %s", args[0], db)
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	if runsJSON {
		return printJSON(cmd, run)
	}

	s := newStyles(cmd.OutOrStdout())
	cmd.Println(s.Title.Render("Run " + run.ID))
	cmd.Printf("Created:  %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Sample 1: %s (%d morphemes)\n", run.First, run.Morphemes[domain.SampleFirst])
	cmd.Printf("Sample 2: %s (%d morphemes)\n", run.Second, run.Morphemes[domain.SampleSecond])
	if run.EqualSize {
		cmd.Println(s.Warning.Render(domain.ErrEqualSize.Error()))
	} else {
		cmd.Printf("Sample 3: %d morphemes, %d/%d iterations, seed %d\n",
			run.Morphemes[domain.SampleResampled], run.Completed, run.Iterations, run.Seed)
		if run.Partial {
			cmd.Println(s.Warning.Render("Interrupted: sample 3 aggregates completed iterations only"))
		}
	}
	cmd.Println()
	cmd.Println(s.resultTable(run.Rows))
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
