package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	recordtable "tablesort/record-table"
	sortengine "tablesort/sort-engine"
)

const defaultOutputName = "sorted_dataset.csv"

type sortOptions struct {
	input         string
	output        string
	column        string
	columns       []string
	algorithm     string
	threshold     int
	stableMerge   bool
	previewRows   int
	parquetReader recordtable.ParquetReader
}

func init() {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort a table by one column and report the elapsed time",
		RunE: func(c *cobra.Command, _ []string) error {
			opts := sortOptions{
				algorithm:     cfg.Sort.Algorithm,
				threshold:     cfg.Sort.Threshold,
				stableMerge:   cfg.Sort.StableMerge,
				previewRows:   cfg.Preview.Rows,
				parquetReader: recordtable.ParquetReader(cfg.Parquet.Reader),
			}
			flags := c.Flags()
			var err error
			if opts.input, err = flags.GetString("input"); err != nil {
				return fmt.Errorf("failed to get input flag: %w", err)
			}
			if opts.column, err = flags.GetString("column"); err != nil {
				return fmt.Errorf("failed to get column flag: %w", err)
			}
			if opts.columns, err = flags.GetStringSlice("columns"); err != nil {
				return fmt.Errorf("failed to get columns flag: %w", err)
			}
			if opts.output, err = flags.GetString("output"); err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			if flags.Changed("algorithm") {
				opts.algorithm, _ = flags.GetString("algorithm")
			}
			if flags.Changed("threshold") {
				opts.threshold, _ = flags.GetInt("threshold")
			}
			if flags.Changed("stable-merge") {
				opts.stableMerge, _ = flags.GetBool("stable-merge")
			}
			if flags.Changed("preview") {
				opts.previewRows, _ = flags.GetInt("preview")
			}
			return runSort(c.Context(), c.OutOrStdout(), opts)
		},
	}

	rootCmd.AddCommand(cmd)

	cmd.Flags().String("input", "", "CSV or Parquet file to sort")
	cmd.Flags().String("column", "", "Column to sort by")
	cmd.Flags().StringSlice("columns", nil, "Load only these columns (the sort column must be among them)")
	cmd.Flags().String("algorithm", "quicksort", "Sort algorithm: quicksort, mergesort, hybrid or insertion")
	cmd.Flags().Int("threshold", sortengine.DefaultThreshold, "Range width below which hybrid sort uses insertion sort")
	cmd.Flags().Bool("stable-merge", false, "Merge sort takes the left row on ties")
	cmd.Flags().String("output", "", "Write the sorted table to this file or directory")
	cmd.Flags().Int("preview", recordtable.DefaultPreviewRows, "Number of rows to preview")
	for _, name := range []string{"input", "column"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Errorf("failed to mark %s flag as required: %w", name, err))
		}
	}
}

func runSort(ctx context.Context, w io.Writer, opts sortOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	algo, err := sortengine.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}

	table, err := recordtable.Load(ctx, opts.input, opts.parquetReader, opts.columns...)
	if err != nil {
		slog.Error("Failed to load table", slog.String("input", opts.input), slog.Any("error", err))
		return fmt.Errorf("failed to load %s: %w", opts.input, err)
	}

	fmt.Fprintln(w, "Dataset preview:")
	if err := table.Preview(w, opts.previewRows); err != nil {
		return err
	}

	res, err := sortengine.Run(table, sortengine.Request{
		Column:      opts.column,
		Algorithm:   algo,
		Threshold:   opts.threshold,
		StableMerge: opts.stableMerge,
	})
	if err != nil {
		slog.Error("Failed to sort table",
			slog.String("column", opts.column),
			slog.String("algorithm", algo.String()),
			slog.Any("error", err))
		return err
	}

	fmt.Fprintf(w, "\nSorted dataset by %s (%s):\n", opts.column, algo.Label())
	if err := table.Preview(w, opts.previewRows); err != nil {
		return err
	}
	fmt.Fprintln(w, res.String())

	if opts.output == "" {
		return nil
	}
	out := outputPath(opts.output)
	if err := recordtable.Save(out, table); err != nil {
		slog.Error("Failed to write sorted table", slog.String("output", out), slog.Any("error", err))
		return err
	}
	slog.Info("Wrote sorted table", slog.String("output", out), slog.Int("rows", table.Len()))
	return nil
}

// outputPath appends the default file name when path names a directory.
func outputPath(path string) string {
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		return filepath.Join(path, defaultOutputName)
	}
	return path
}
