package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"mosaic/adapters/excel"
	"mosaic/domain/analysis"
	"mosaic/internal"
	"mosaic/internal/dashboard"
	"mosaic/internal/testkit"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	file  string
	sheet string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "mosaic-cli",
		Short:         "Run dashboard analyses against a tabular file without the browser",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultFile := os.Getenv("DATA_FILE")
	if defaultFile == "" {
		defaultFile = "simple.csv"
	}
	rootCmd.PersistentFlags().StringVar(&flags.file, "file", defaultFile, "CSV, TSV or XLSX dataset")
	rootCmd.PersistentFlags().StringVar(&flags.sheet, "sheet", "", "XLSX sheet (default first sheet)")

	rootCmd.AddCommand(
		newColumnsCmd(flags),
		newAnalyzeCmd(flags),
		newSampleCmd(),
	)
	return rootCmd
}

func loadApp(flags *globalFlags) (*dashboard.App, error) {
	table, err := excel.Load(excel.ReaderConfig{FilePath: flags.file, SheetName: flags.sheet})
	if err != nil {
		return nil, err
	}
	opts := dashboard.DefaultOptions()
	opts.Source = filepath.Base(flags.file)
	return dashboard.NewApp(table, opts, internal.NewLogger(internal.LogLevelWarn)), nil
}

func newColumnsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the discovered columns with their kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tKIND\tMISSING")
			for _, c := range app.Schema() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.Name, c.Kind, c.Missing)
			}
			return w.Flush()
		},
	}
}

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	var (
		columns []string
		mode    string
		filter  float64
		format  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate a selection exactly as the dashboard does",
		Long: `Evaluate a column selection, analysis mode and filter value.

Example: mosaic-cli analyze --file simple.csv --columns score --mode top_n --filter 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := analysis.ParseMode(mode); err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}

			sel := dashboard.Selection{Columns: columns, Mode: mode}
			if cmd.Flags().Changed("filter") || mode == string(analysis.ModeDescriptive) {
				sel.Filter = &filter
			}
			out, err := app.Evaluate(sel)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), out)
			case "table":
				return writeTable(cmd.OutOrStdout(), out)
			}
			return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns in selection order (comma separated or repeated)")
	cmd.Flags().StringVar(&mode, "mode", string(analysis.ModeDescriptive), "descriptive, top_n or bottom_n")
	cmd.Flags().Float64Var(&filter, "filter", 1, "Row count for top_n/bottom_n")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")

	return cmd
}

func newSampleCmd() *cobra.Command {
	config := testkit.DefaultAirdropConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic airdrop dataset (CSV, or XLSX when --out ends in .xlsx)",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := testkit.NewAirdropDataGenerator(config).GenerateTable()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return excel.WriteCSV(cmd.OutOrStdout(), table)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if strings.EqualFold(filepath.Ext(out), ".xlsx") {
				err = excel.WriteXLSX(f, table)
			} else {
				err = excel.WriteCSV(f, table)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", table.Len(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&config.WalletCount, "wallets", config.WalletCount, "Number of rows")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().Float64Var(&config.NamedRate, "named-rate", config.NamedRate, "Share of wallets with an ENS name")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func writeTable(out io.Writer, result *dashboard.Output) error {
	if result.State == dashboard.StateIdle {
		_, err := fmt.Fprintln(out, "selection incomplete: choose columns, a mode and a non-zero filter")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	names := make([]string, len(result.Columns))
	for i, c := range result.Columns {
		names[i] = c.Name
	}
	fmt.Fprintln(w, strings.Join(names, "\t"))
	for _, rec := range result.Rows {
		cells := make([]string, len(names))
		for i, name := range names {
			v, _ := rec.Get(name)
			cells[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if result.Chart != nil {
		fmt.Fprintf(out, "\n%s (%s by %s)\n", result.Chart.Title, result.Chart.YColumn, result.Chart.XColumn)
		cw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for i, cat := range result.Chart.Categories {
			fmt.Fprintf(cw, "%s\t%g\n", cat, result.Chart.Values[i])
		}
		return cw.Flush()
	}
	return nil
}
