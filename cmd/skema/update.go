package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/cli"
)

var updateCmd = &cobra.Command{
	Use:   "update SCHEMA INSTANCE PATCH",
	Short: "Merge a patch into an instance",
	Long: `Deep-merges PATCH into INSTANCE (null deletes a property, arrays are
replaced), validates the merged result and prints it as JSON. Either document
may be "-" for stdin.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := cli.LoadObjectSchema(args[0], logger)
		if err != nil {
			return err
		}
		if args[1] == cli.Stdin && args[2] == cli.Stdin {
			return fmt.Errorf("only one of INSTANCE and PATCH may be read from stdin")
		}
		existing, err := cli.ReadDocument(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		patch, err := cli.ReadDocument(args[2], cmd.InOrStdin())
		if err != nil {
			return err
		}
		inst, err := o.Update(existing, patch)
		if err != nil {
			return failure(cmd, err)
		}
		return cli.WriteJSON(cmd.OutOrStdout(), inst)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// failure prints a validation failure and turns it into errInvalid; other
// errors are returned unchanged.
func failure(cmd *cobra.Command, err error) error {
	if _, ok := skema.AsValidationError(err); !ok {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatFailure(err))
	return errInvalid
}
