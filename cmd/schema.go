package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	recordtable "tablesort/record-table"
)

func init() {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the inferred schema of a table file",
		RunE: func(c *cobra.Command, _ []string) error {
			filename, columns, err := displayFlags(c)
			if err != nil {
				return err
			}
			return runSchema(c.Context(), c.OutOrStdout(), filename, columns)
		},
	}
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the first rows of a table file",
		RunE: func(c *cobra.Command, _ []string) error {
			filename, columns, err := displayFlags(c)
			if err != nil {
				return err
			}
			rows := cfg.Preview.Rows
			if c.Flags().Changed("rows") {
				rows, _ = c.Flags().GetInt("rows")
			}
			return runPreview(c.Context(), c.OutOrStdout(), filename, columns, rows)
		},
	}
	previewCmd.Flags().Int("rows", recordtable.DefaultPreviewRows, "Number of rows to show")

	for _, cmd := range []*cobra.Command{schemaCmd, previewCmd} {
		rootCmd.AddCommand(cmd)
		cmd.Flags().String("input", "", "CSV or Parquet file to read")
		cmd.Flags().StringSlice("columns", nil, "Read only these columns")
		if err := cmd.MarkFlagRequired("input"); err != nil {
			panic(fmt.Errorf("failed to mark input flag as required: %w", err))
		}
	}
}

func displayFlags(c *cobra.Command) (string, []string, error) {
	filename, err := c.Flags().GetString("input")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get input flag: %w", err)
	}
	columns, err := c.Flags().GetStringSlice("columns")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get columns flag: %w", err)
	}
	return filename, columns, nil
}

func loadForDisplay(ctx context.Context, filename string, columns []string) (*recordtable.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	t, err := recordtable.Load(ctx, filename, recordtable.ParquetReader(cfg.Parquet.Reader), columns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return t, nil
}

func runSchema(ctx context.Context, w io.Writer, filename string, columns []string) error {
	t, err := loadForDisplay(ctx, filename, columns)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, t.Schema.String())
	return err
}

func runPreview(ctx context.Context, w io.Writer, filename string, columns []string, rows int) error {
	t, err := loadForDisplay(ctx, filename, columns)
	if err != nil {
		return err
	}
	return t.Preview(w, rows)
}
