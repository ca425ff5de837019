package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate SCHEMA DATA...",
	Short: "Check documents against a schema",
	Long: `Asserts every document of every DATA file ("-" for stdin) against the
schema and reports the first failure of each with its JSON pointer, message
and error code. Exits with status 1 when any document is invalid.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cli.LoadSchema(args[0], logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		invalid := 0
		for _, path := range args[1:] {
			docs, err := cli.ReadDocuments(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			for i, doc := range docs {
				name := path
				if len(docs) > 1 {
					name = fmt.Sprintf("%s#%d", path, i)
				}
				err := t.Assert(doc)
				if err == nil {
					fmt.Fprintf(out, "%s: valid\n", name)
					continue
				}
				if skema.IsDefinitionError(err) {
					return err
				}
				invalid++
				logger.Debug("document rejected", "document", name, "error", err)
				fmt.Fprintf(out, "%s: %s\n", name, cli.FormatFailure(err))
			}
		}
		if invalid > 0 {
			return errInvalid
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
