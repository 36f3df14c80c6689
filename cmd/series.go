package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd groups stored-series management commands.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Inspect and manage stored series",
	Long: `Manage the series saved in the local store.

Subcommands:
  list   - Show all stored series with counts and date ranges
  show   - Print one series with its most recent observations
  delete - Remove one series and its observations

Examples:
  # See what is stored
  fredline series list

  # Inspect one series
  fredline series show GDP --latest 12

  # Remove a series
  fredline series delete GDP`,
}

// seriesListCmd lists all stored series.
var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all stored series with counts and date ranges.",
	Long: `List every series in the store, ordered by series ID.

Each row shows the title, frequency, units, observation count, and the
first and last observation dates. Use --output csv or json for
machine-readable listings.

Examples:
  # Table listing
  fredline series list

  # Machine-readable listing
  fredline series list --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeriesList(cfg, core.DefaultStoreManager()); err != nil {
			contract.LogFatal("Cannot list series", err)
		}
	},
}

// seriesShowCmd prints one stored series.
var seriesShowCmd = &cobra.Command{
	Use:   "show <series-id>",
	Short: "Print one series with its most recent observations.",
	Long: `Show a single stored series: its metadata followed by the most
recent observations, newest first.

Examples:
  # Show the default number of recent observations
  fredline series show GDP

  # Show more history
  fredline series show GDP --latest 20`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The positional arg is consumed below, not as a chart series list
		return sharedSetup(rootCtx, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSeriesShow(cfg, core.DefaultStoreManager(), sess, normalizeSeriesID(args[0])); err != nil {
			contract.LogFatal("Cannot show series", err)
		}
	},
}

// seriesDeleteCmd removes one stored series.
var seriesDeleteCmd = &cobra.Command{
	Use:   "delete <series-id>",
	Short: "Remove one series and its observations from the store.",
	Long: `Delete a stored series and all of its observations.

This only affects the local store. The series can be fetched again at
any time.

Examples:
  # Remove a series
  fredline series delete GDP`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSeriesDelete(core.DefaultStoreManager(), normalizeSeriesID(args[0])); err != nil {
			contract.LogFatal("Cannot delete series", err)
		}
	},
}
