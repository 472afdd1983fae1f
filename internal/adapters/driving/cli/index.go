package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var indexJSON bool

var indexCmd = &cobra.Command{
	Use:   "index <corpus>",
	Short: "List the prefix and suffix types of a corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(indexCmd)
}

type indexOutput struct {
	Tokens        int      `json:"tokens"`
	Prefixes      []string `json:"prefixes"`
	Suffixes      []string `json:"suffixes"`
	Constructions int      `json:"constructions"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	inv, err := analysisService.Index(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	out := indexOutput{
		Tokens:        inv.Tokens,
		Prefixes:      inv.Prefixes.Sorted(),
		Suffixes:      inv.Suffixes.Sorted(),
		Constructions: inv.Constructions.Len(),
	}

	if indexJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal inventory: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	s := newStyles(cmd.OutOrStdout())
	cmd.Println(s.Title.Render(args[0]))
	cmd.Printf("Tokens:        %d\n", out.Tokens)
	cmd.Printf("Constructions: %d\n", out.Constructions)
	cmd.Printf("Prefixes (%d): %s\n", len(out.Prefixes), strings.Join(out.Prefixes, " "))
	cmd.Printf("Suffixes (%d): %s\n", len(out.Suffixes), strings.Join(out.Suffixes, " "))
	return nil
}
