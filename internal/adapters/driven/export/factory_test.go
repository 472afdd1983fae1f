package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export/csvfile"
	"github.com/custodia-labs/morpho/internal/adapters/driven/export/report"
	"github.com/custodia-labs/morpho/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/services"
)

func names(t *testing.T, out domain.OutputSettings) []string {
	t.Helper()
	exporters, closeFn, err := NewFactory(file.NewCodec()).Create(out)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	var got []string
	for _, e := range exporters {
		got = append(got, e.Name())
	}
	return got
}

func TestFactory_Create(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		out  domain.OutputSettings
		want []string
	}{
		{"nothing enabled", domain.OutputSettings{Dir: dir}, nil},
		{"files only", domain.OutputSettings{Dir: dir, CSV: true, Report: true, Sample: true}, []string{"csv", "report", "sample"}},
		{"report only", domain.OutputSettings{Dir: dir, Report: true}, []string{"report"}},
		{"database only", domain.OutputSettings{Database: filepath.Join(dir, "runs.db")}, []string{"database"}},
		{"everything", domain.OutputSettings{Dir: dir, CSV: true, Report: true, Sample: true, Database: filepath.Join(dir, "all.db")},
			[]string{"csv", "report", "sample", "database"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(t, tt.out))
		})
	}
}

func TestFactory_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results", "run1")
	names(t, domain.OutputSettings{Dir: dir, CSV: true})

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFactory_EmptyDir(t *testing.T) {
	_, closeFn, err := NewFactory(file.NewCodec()).Create(domain.OutputSettings{CSV: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, closeFn())
}

func TestFactory_SampleWithoutWriter(t *testing.T) {
	_, _, err := NewFactory(nil).Create(domain.OutputSettings{Dir: t.TempDir(), Sample: true})
	assert.Error(t, err)
}

func TestFactory_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "adult.txt")
	second := filepath.Join(dir, "child.txt")
	require.NoError(t, os.WriteFile(first,
		[]byte("re_do\nre_make\nun_do\nun_tie\npre_do\nre_do\nover_load\nun_make\n"), 0o644))
	require.NoError(t, os.WriteFile(second,
		[]byte("re_do\nun_do\nre_tie\nmis_do\nun_make\n"), 0o644))

	codec := file.NewCodec()
	seed := uint64(21)
	c, err := services.NewAnalysisService(codec, codec, nil).Compare(context.Background(), domain.AnalysisRequest{
		FirstPath: first, SecondPath: second, Iterations: 3, Seed: &seed,
	})
	require.NoError(t, err)

	out := domain.OutputSettings{
		Dir:      filepath.Join(dir, "out"),
		CSV:      true,
		Report:   true,
		Sample:   true,
		Database: filepath.Join(dir, "out", "runs.db"),
	}
	paths, err := services.NewExportService(NewFactory(codec)).Export(context.Background(), c, out)
	require.NoError(t, err)

	for _, name := range []string{csvfile.CreativityFile, csvfile.SummaryFile, report.FileName, "adult_sample.txt"} {
		assert.Contains(t, paths, filepath.Join(out.Dir, name))
		assert.FileExists(t, filepath.Join(out.Dir, name))
	}
	assert.Contains(t, paths, out.Database)

	store, err := sqlite.OpenExisting(out.Database)
	require.NoError(t, err)
	defer store.Close()

	run, err := store.GetRun(context.Background(), c.RunID)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), run.Seed)
	assert.Len(t, run.Rows, 10)
}
