package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes stored observations to analytics-friendly formats.
var exportCmd = &cobra.Command{
	Use:   "export [series-id...]",
	Short: "Export stored observations to CSV, JSON, or Parquet.",
	Long: `Write full observation rows for the named series, or for every
stored series when none are named.

Formats:
- csv/json: written to --output-file, or stdout when omitted
- parquet: columnar output for DuckDB, pandas, and Spark;
  requires --output-file

Examples:
  # Export everything as CSV to stdout
  fredline export --output csv

  # Export selected series to a file
  fredline export GDP UNRATE --output json --output-file series.json

  # Export for analytics tooling
  fredline export --output parquet --output-file observations.parquet
  duckdb -c "SELECT * FROM read_parquet('observations.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(cfg, core.DefaultStoreManager(), sess); err != nil {
			contract.LogFatal("Cannot export observations", err)
		}
	},
}
