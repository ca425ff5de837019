package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/skema"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skema",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "skema version %s\n", strings.TrimSpace(skema.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
