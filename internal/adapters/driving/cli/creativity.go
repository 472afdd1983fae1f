package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

var (
	creativityPosition string
	creativityJSON     bool
)

var creativityCmd = &cobra.Command{
	Use:   "creativity <corpus>",
	Short: "Measure CRE and TRI of one corpus",
	Long: `Prints the Creativity (number of distinct partners) of every morpheme
and the aggregate CRE and TRI of the position.

Without --position both prefixes and suffixes are shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreativity,
}

func init() {
	creativityCmd.Flags().StringVarP(&creativityPosition, "position", "p", "", "prefix or suffix")
	creativityCmd.Flags().BoolVar(&creativityJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(creativityCmd)
}

func runCreativity(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	positions := domain.Positions()
	if creativityPosition != "" {
		p, err := domain.ParsePosition(creativityPosition)
		if err != nil {
			return err
		}
		positions = []domain.Position{p}
	}

	sa, err := analysisService.Creativity(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("creativity failed: %w", err)
	}

	if creativityJSON {
		out := make(map[domain.Position]domain.PositionAnalysis, len(positions))
		for _, p := range positions {
			out[p] = sa.At(p)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal creativity: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	s := newStyles(cmd.OutOrStdout())
	cmd.Printf("%s (%d tokens)\n", s.Title.Render(sa.Name), sa.Tokens)
	for _, p := range positions {
		pa := sa.At(p)
		st := pa.Stat
		cmd.Println()
		cmd.Println(s.Title.Render(p.Analysis()))
		cmd.Println(s.recordTable(pa.Records))
		cmd.Printf("Types: %d  CRE: %.4f (sd %.4f)  TRI: %.4f (%d trite, %.2f%%)\n",
			st.Types, st.CREMean, st.CREStdDev, st.TRI, st.TriteCount, st.TRIPercent)
	}
	return nil
}
