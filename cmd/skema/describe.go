package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/cli"
	"github.com/reoring/skema/render"
)

var (
	describeFormat     string
	describeFields     []string
	describeSkipHeader bool
)

var describeCmd = &cobra.Command{
	Use:   "describe SCHEMA",
	Short: "List every rule of a schema",
	Long: `Flattens the schema into one record per rule (path, code, message,
failure condition) and renders the records as an ASCII table, CSV or JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cli.LoadSchema(args[0], logger)
		if err != nil {
			return err
		}
		records, err := skema.Describe(t)
		if err != nil {
			return err
		}
		logger.Debug("described schema", "records", len(records))
		out, err := render.Render(describeFormat, records, describeFields, render.Options{SkipHeader: describeSkipHeader})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", render.FormatASCII, "output format (ascii, csv, json, records)")
	describeCmd.Flags().StringSliceVar(&describeFields, "fields", nil, "fields to render (path, code, message, failure_condition, rule)")
	describeCmd.Flags().BoolVar(&describeSkipHeader, "skip-header", false, "omit the table header (ascii)")
	rootCmd.AddCommand(describeCmd)
}
