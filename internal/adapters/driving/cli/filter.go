package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	filterAgainst string
	filterOutput  string
)

var filterCmd = &cobra.Command{
	Use:   "filter <corpus>",
	Short: "Restrict a corpus to the vocabulary of another",
	Long: `Keeps only the records of <corpus> whose prefix and suffix both occur in
the reference corpus, and writes them in the corpus format.

Examples:
  morpho filter child.txt --against adult.txt
  morpho filter child.txt --against adult.txt -o child_filtered.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterAgainst, "against", "", "reference corpus (required)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "output file (default stdout)")
	_ = filterCmd.MarkFlagRequired("against")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	if filterOutput == "" {
		return filterTo(cmd, args[0], cmd.OutOrStdout())
	}

	f, err := os.Create(filterOutput)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := filterTo(cmd, args[0], f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func filterTo(cmd *cobra.Command, corpus string, w io.Writer) error {
	filtered, err := analysisService.Filter(commandContext(cmd), corpus, filterAgainst, w)
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}
	if filterOutput != "" {
		cmd.Printf("Wrote %d tokens to %s\n", filtered.Len(), filterOutput)
	}
	return nil
}
