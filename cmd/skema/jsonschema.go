package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/cli"
)

var jsonschemaCmd = &cobra.Command{
	Use:   "jsonschema SCHEMA",
	Short: "Export a schema as JSON Schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cli.LoadSchema(args[0], logger)
		if err != nil {
			return err
		}
		js, err := skema.JSONSchema(t)
		if err != nil {
			return err
		}
		return cli.WriteJSON(cmd.OutOrStdout(), js)
	},
}

func init() {
	rootCmd.AddCommand(jsonschemaCmd)
}
