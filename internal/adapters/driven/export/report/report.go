// Package report writes the human-readable summary of a comparison.
package report

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/morpho/internal/adapters/driven/export/atomicfile"
	"github.com/custodia-labs/morpho/internal/core/domain"
	"github.com/custodia-labs/morpho/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Exporter = (*Exporter)(nil)

// FileName is the report file name.
const FileName = "feedback_file.txt"

const separator = "------------------------------------------------------------------------------"

// Exporter writes feedback_file.txt.
type Exporter struct {
	dir string
}

// New creates a report exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Name identifies the exporter.
func (e *Exporter) Name() string {
	return "report"
}

// Export writes the report and returns its path.
func (e *Exporter) Export(ctx context.Context, c *domain.Comparison) ([]string, error) {
	path := filepath.Join(e.dir, FileName)
	err := atomicfile.Write(ctx, path, func(w io.Writer) error {
		_, err := io.WriteString(w, Render(c))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export report: %w", err)
	}
	return []string{path}, nil
}

// Render builds the report text.
func Render(c *domain.Comparison) string {
	var b strings.Builder

	writeIntro(&b, c)
	writeTriteness(&b, c)
	writeCreativity(&b, c)

	b.WriteString("Summary of results\n\n")
	b.WriteString(SummaryTable(c.Rows()))
	b.WriteString("\n\n")

	writeHistograms(&b, c)
	writeAppendices(&b, c)
	return b.String()
}

// SummaryTable renders the result rows as a plain-text table.
func SummaryTable(rows []domain.ResultRow) string {
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("Control", "Sample", "Analysis", "CRE", "sd", "Tokens", "Types", "TRI", "TRI%")
	for _, r := range rows {
		t.Row(
			string(r.Control),
			strconv.Itoa(int(r.Sample)),
			r.Analysis,
			fmt.Sprintf("%.4f", r.CREMean),
			fmt.Sprintf("%.4f", r.CREStdDev),
			strconv.Itoa(r.Tokens),
			strconv.Itoa(r.Types),
			fmt.Sprintf("%.4f", r.TRI),
			fmt.Sprintf("%.2f", r.TRIPercent),
		)
	}
	return t.String()
}

func writeIntro(b *strings.Builder, c *domain.Comparison) {
	first, second := c.Unfiltered[0], c.Unfiltered[1]

	b.WriteString(separator + "\n")
	fmt.Fprintf(b, "Run %s (%s)\n", c.RunID, c.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(b, "Sample 1 is %s\n", first.Name)
	fmt.Fprintf(b, "Sample 2 is %s\n", second.Name)
	fmt.Fprintf(b, "Number of tokens in sample 1: %d\n", first.Tokens)
	fmt.Fprintf(b, "Number of tokens in sample 2: %d\n", second.Tokens)
	fmt.Fprintf(b, "[A] Number of prefix types in sample 1: %d\n", first.Prefix.Stat.Types)
	fmt.Fprintf(b, "[B] Number of prefix types in sample 2: %d\n", second.Prefix.Stat.Types)
	fmt.Fprintf(b, "[C] Number of suffix types in sample 1: %d\n", first.Suffix.Stat.Types)
	fmt.Fprintf(b, "[D] Number of suffix types in sample 2: %d\n", second.Suffix.Stat.Types)
	fmt.Fprintf(b, "Shared prefixes between samples 1 and 2 (%d):\n  %s\n",
		len(c.Filter.SharedPrefixes), strings.Join(c.Filter.SharedPrefixes, ", "))
	fmt.Fprintf(b, "Shared suffixes between samples 1 and 2 (%d):\n  %s\n",
		len(c.Filter.SharedSuffixes), strings.Join(c.Filter.SharedSuffixes, ", "))
	fmt.Fprintf(b, "After filtering sample 1 with the vocabulary of sample 2, sample 1 has %d tokens\n", c.Lexical[0].Tokens)
	fmt.Fprintf(b, "After filtering sample 2 with the vocabulary of sample 1, sample 2 has %d tokens\n", c.Lexical[1].Tokens)

	if r := c.Resample; r != nil {
		fmt.Fprintf(b, "Sample 3 draws %d tokens from sample %d over %d of %d iterations (seed %d)\n",
			r.DrawSize, r.Source, r.Completed, r.Iterations, r.Seed)
		if r.Clamped {
			fmt.Fprintf(b, "Requested iterations (%d) were clamped to %d\n", r.Requested, r.Iterations)
		}
		if r.Partial {
			b.WriteString("The run was cancelled, sample 3 aggregates the completed iterations only\n")
		}
		fmt.Fprintf(b, "[E] Number of prefix types in sample 3: %d\n", r.Prefix.Stat.Types)
		fmt.Fprintf(b, "[F] Number of suffix types in sample 3: %d\n", r.Suffix.Stat.Types)
	} else {
		b.WriteString("Both filtered samples have the same number of tokens, no resampling was necessary\n")
	}
	b.WriteString(separator + "\n\n")
}

func writeTriteness(b *strings.Builder, c *domain.Comparison) {
	b.WriteString(separator + "\n")
	b.WriteString("Triteness [TRI] before controlling for anything:\n")
	for _, sa := range c.Unfiltered {
		writeSampleTRI(b, sa.Sample, sa.Prefix.Stat, sa.Suffix.Stat)
	}
	b.WriteString("Triteness [TRI] after controlling for vocabulary:\n")
	for _, sa := range c.Lexical {
		writeSampleTRI(b, sa.Sample, sa.Prefix.Stat, sa.Suffix.Stat)
	}
	if r := c.Resample; r != nil {
		b.WriteString("Triteness [TRI] after controlling for vocabulary and sample size:\n")
		writeSampleTRI(b, domain.SampleResampled, r.Prefix.Stat, r.Suffix.Stat)
	}
	b.WriteString(separator + "\n\n")
}

func writeSampleTRI(b *strings.Builder, sample domain.SampleID, stats ...domain.AggregateStat) {
	for i, st := range stats {
		p := st.Position
		fmt.Fprintf(b, "(%d%c) TRI %ses in sample %d = %.4f\n", sample, 'a'+i, p.Label(), sample, st.TRI)
		fmt.Fprintf(b, "     %ses used with just one %s: %d out of %d (%.2f%%)\n",
			p.Label(), strings.ToLower(p.Partner().Label()), st.TriteCount, st.Types, st.TRIPercent)
	}
}

func writeCreativity(b *strings.Builder, c *domain.Comparison) {
	b.WriteString(separator + "\n")
	b.WriteString("Creativity [CRE] before controlling for anything:\n")
	for _, sa := range c.Unfiltered {
		writeSampleCRE(b, sa.Sample, sa.Prefix.Stat, sa.Suffix.Stat)
	}
	b.WriteString("Creativity [CRE] after controlling for vocabulary:\n")
	for _, sa := range c.Lexical {
		writeSampleCRE(b, sa.Sample, sa.Prefix.Stat, sa.Suffix.Stat)
	}
	if r := c.Resample; r != nil {
		b.WriteString("Creativity [CRE] after controlling for vocabulary and sample size:\n")
		writeSampleCRE(b, domain.SampleResampled, r.Prefix.Stat, r.Suffix.Stat)
	}
	b.WriteString(separator + "\n\n")
}

func writeSampleCRE(b *strings.Builder, sample domain.SampleID, stats ...domain.AggregateStat) {
	for i, st := range stats {
		fmt.Fprintf(b, "(%d%c) CRE %ses in sample %d = %.4f (sd %.4f)\n",
			sample, 'a'+i, st.Position.Label(), sample, st.CREMean, st.CREStdDev)
	}
}

func writeHistograms(b *strings.Builder, c *domain.Comparison) {
	b.WriteString(separator + "\n")
	b.WriteString("Distribution of CRE per sample (morphemes per CRE bin)\n")
	for _, p := range domain.Positions() {
		for _, sa := range c.Unfiltered {
			fmt.Fprintf(b, "\n%ses, sample %d:\n", p.Label(), sa.Sample)
			b.WriteString(Histogram(recordValues(sa.At(p).Records)))
		}
		if c.Resample != nil {
			fmt.Fprintf(b, "\n%ses, sample 3 (mean CRE):\n", p.Label())
			b.WriteString(Histogram(meanValues(c.Resample.At(p).Means)))
		}
	}
	b.WriteString(separator + "\n\n")
}

func writeAppendices(b *strings.Builder, c *domain.Comparison) {
	for _, sa := range c.Unfiltered {
		for _, p := range domain.Positions() {
			b.WriteString(separator + "\n")
			fmt.Fprintf(b, "%s types in sample %d with values of CRE:\n", p.Label(), sa.Sample)
			for _, r := range sa.At(p).Records {
				fmt.Fprintf(b, "  %-20s %d\n", r.Morpheme, r.CRE)
			}
		}
	}
	if c.Resample == nil {
		return
	}
	for _, p := range domain.Positions() {
		b.WriteString(separator + "\n")
		fmt.Fprintf(b, "%s types in sample 3 with mean values of CRE:\n", p.Label())
		for _, m := range c.Resample.At(p).Means {
			fmt.Fprintf(b, "  %-20s %.4f (%d draws)\n", m.Morpheme, m.CRE, m.Draws)
		}
	}
	b.WriteString(separator + "\n")
}

func recordValues(records []domain.MorphemeRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.CRE)
	}
	return out
}

func meanValues(means []domain.MorphemeMean) []float64 {
	out := make([]float64, len(means))
	for i, m := range means {
		out[i] = m.CRE
	}
	return out
}
