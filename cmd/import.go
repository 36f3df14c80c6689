package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd loads local data files into the store.
var importCmd = &cobra.Command{
	Use:   "import <file> [file...]",
	Short: "Import local CSV or JSON files as series.",
	Long: `Load series from local files instead of the FRED API.

Two formats are supported:
- CSV: one observation per row as date,value with an optional header row
- JSON: the FRED API response shape, with optional "seriess" metadata
  and an "observations" array

The series ID comes from the file's metadata when present, otherwise
from the file name (data/gdp.csv becomes GDP). Imported series are
persisted to the configured store like fetched ones.

Examples:
  # Import a CSV export
  fredline import data/gdp.csv

  # Import several files at once
  fredline import gdp.csv unrate.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: fileArgsSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImport(cfg, core.DefaultStoreManager(), sess, args); err != nil {
			contract.LogFatal("Cannot import files", err)
		}
	},
}
