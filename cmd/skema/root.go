package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/internal/cli"
)

var (
	logLevel string
	lang     string
	logger   *slog.Logger
)

// errInvalid marks a run whose documents failed validation; the failures
// themselves have already been printed.
var errInvalid = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "skema",
	Short: "skema validates, creates and documents JSON-like data",
	Long: `skema loads a schema definition (YAML or JSON) and uses it to validate
instance documents, create and update instances with defaults applied, and
describe every rule of the schema as a table, CSV or JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = cli.CreateLogger(logLevel); err != nil {
			return err
		}
		switch lang {
		case "en", "ja":
			i18n.SetLanguage(lang)
		default:
			return fmt.Errorf("unsupported language %q (en, ja)", lang)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "message language (en, ja)")
}
