package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// theme defines the colour palette of terminal output.
type theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Border    lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// styles holds lipgloss styles bound to one output. Colour is dropped
// automatically when the output is not a terminal.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	t := defaultTheme()

	return &styles{
		Title:   r.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:   r.NewStyle().Foreground(t.Muted),
		Success: r.NewStyle().Foreground(t.Success),
		Warning: r.NewStyle().Bold(true).Foreground(t.Warning),
		Header:  r.NewStyle().Bold(true).Foreground(t.Secondary).Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
		Border:  r.NewStyle().Foreground(t.Border),
	}
}

// table returns a bordered table with the theme applied.
func (s *styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		}).
		Headers(headers...)
}

// resultTable renders the summary rows of a comparison.
func (s *styles) resultTable(rows []domain.ResultRow) string {
	t := s.table("Control", "Sample", "Analysis", "CRE", "sd", "Tokens", "Types", "TRI", "TRI%")
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

// recordTable renders per-morpheme CRE values.
func (s *styles) recordTable(records []domain.MorphemeRecord) string {
	t := s.table("Morpheme", "CRE")
	for _, r := range records {
		t.Row(r.Morpheme, strconv.Itoa(r.CRE))
	}
	return t.String()
}
