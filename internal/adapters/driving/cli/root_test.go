package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export"
	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/morpho/internal/core/services"
)

const (
	adultCorpus = "re_do\nre_make\nun_do\nun_tie\npre_do\nre_do\nover_load\nun_make\n"
	childCorpus = "re_do\nun_do\nre_tie\nmis_do\nun_make\n"
)

// setupTestServices wires real services over an in-memory config store.
// Output files default to a temporary directory.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	codec := file.NewCodec()
	config := memory.NewConfigStore(map[string]any{
		"output.dir": filepath.Join(t.TempDir(), "out"),
	})

	SetServices(Services{
		Analysis: services.NewAnalysisService(codec, codec, services.NewResampler(2)),
		Settings: services.NewSettingsService(config),
		Export:   services.NewExportService(export.NewFactory(codec)),
		Runs:     services.NewRunService(sqlite.OpenExisting),
	})

	return func() {
		SetServices(Services{})
	}
}

// writeCorpora writes the adult and child test corpora and returns their paths.
func writeCorpora(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	adult := filepath.Join(dir, "adult.txt")
	child := filepath.Join(dir, "child.txt")
	require.NoError(t, os.WriteFile(adult, []byte(adultCorpus), 0o644))
	require.NoError(t, os.WriteFile(child, []byte(childCorpus), 0o644))
	return adult, child
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
