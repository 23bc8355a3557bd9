package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/engine"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var glossaryFormat string

//nolint:gochecknoglobals // Cobra commands are typically global
var glossaryCmd = &cobra.Command{
	Use:   "glossary [category]",
	Short: "Explain the dataset's variables",
	Long: `Prints the variable glossary. Without an argument every category is
listed after the index variables. The category may be given by key
(policy) or label ("COVID-19 related data").`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGlossary,
}

func init() {
	rootCmd.AddCommand(glossaryCmd)
	glossaryCmd.Flags().StringVar(&glossaryFormat, "format", "text", "output format: text, json, pretty")
}

type glossarySection struct {
	Category string                 `json:"category"`
	Label    string                 `json:"label"`
	Entries  []engine.GlossaryEntry `json:"entries"`
}

func runGlossary(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	sections, err := glossarySections(args)
	if err != nil {
		return err
	}

	if glossaryFormat == "json" || glossaryFormat == "pretty" {
		return writeJSON(cmd.OutOrStdout(), sections, glossaryFormat)
	}
	return writeGlossaryText(cmd.OutOrStdout(), sections)
}

func glossarySections(args []string) ([]glossarySection, error) {
	if len(args) == 1 {
		cat, err := engine.ParseCategory(args[0])
		if err != nil {
			return nil, err
		}
		return []glossarySection{newGlossarySection(cat)}, nil
	}

	sections := []glossarySection{{Category: "index", Label: "Index variables", Entries: engine.IndexVariables()}}
	for _, cat := range engine.Categories() {
		sections = append(sections, newGlossarySection(cat))
	}
	return sections, nil
}

func newGlossarySection(cat engine.Category) glossarySection {
	return glossarySection{Category: string(cat), Label: cat.Label(), Entries: engine.DescribeCategory(cat)}
}

func writeGlossaryText(w io.Writer, sections []glossarySection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", s.Label)
		for _, e := range s.Entries {
			fmt.Fprintf(tw, "  %s\t%s\n", e.Variable, e.Description)
		}
	}
	return tw.Flush()
}
