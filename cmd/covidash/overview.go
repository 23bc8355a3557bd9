package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spektr-org/covidash/engine"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var overviewFormat string

//nolint:gochecknoglobals // Cobra commands are typically global
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Describe the loaded dataset",
	Long:  `Prints a preview of the full history table, its size and the train/test splits.`,
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&overviewFormat, "format", "text", "output format: text, json, pretty")
}

func runOverview(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	overview := ds.Overview(cfg.Dashboard.PreviewRows)
	if overviewFormat == "json" || overviewFormat == "pretty" {
		return writeJSON(cmd.OutOrStdout(), overview, overviewFormat)
	}
	return writeOverviewText(cmd.OutOrStdout(), overview)
}

func writeOverviewText(w io.Writer, overview *engine.Overview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if p := overview.Preview; p != nil && len(p.Columns) > 0 {
		headers := make([]string, 0, len(p.Columns))
		for _, c := range p.Columns {
			headers = append(headers, c.Label)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
		for _, row := range p.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, overview.Reply)
	for _, s := range overview.Splits {
		if s.From == "" {
			fmt.Fprintf(w, "  %s: %s observations\n", s.Name, engine.FormatInt(s.Observations))
			continue
		}
		fmt.Fprintf(w, "  %s: %s observations, %s to %s\n", s.Name, engine.FormatInt(s.Observations), s.From, s.To)
	}
	return nil
}
