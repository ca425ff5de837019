package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/skema/internal/cli"
)

var createCmd = &cobra.Command{
	Use:   "create SCHEMA [PATCH]",
	Short: "Create an instance with defaults applied",
	Long: `Builds the default instance of an object schema, merges the optional
PATCH document ("-" for stdin) on top, validates the result and prints it as
JSON.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := cli.LoadObjectSchema(args[0], logger)
		if err != nil {
			return err
		}
		var patch any
		if len(args) == 2 {
			if patch, err = cli.ReadDocument(args[1], cmd.InOrStdin()); err != nil {
				return err
			}
		}
		inst, err := o.Create(patch)
		if err != nil {
			return failure(cmd, err)
		}
		return cli.WriteJSON(cmd.OutOrStdout(), inst)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
