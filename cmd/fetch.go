package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/internal/fredclient"
	"github.com/spf13/cobra"
)

// fetchCmd downloads series from the FRED API.
var fetchCmd = &cobra.Command{
	Use:   "fetch <series-id> [series-id...]",
	Short: "Fetch series from the FRED API and store them locally.",
	Long: `Download one or more economic time series from the FRED API.

Each series is fetched in two requests (metadata, then observations),
cached for the rest of the invocation, and persisted to the configured
store so later chart and export commands can use it offline.

Requires a FRED API key, available for free at https://fred.stlouisfed.org.
Set it via --api-key or the FREDLINE_API_KEY environment variable.

Examples:
  # Fetch quarterly US GDP
  fredline fetch GDP

  # Fetch several series at once (up to 5)
  fredline fetch GDP UNRATE CPIAUCSL

  # Restrict to a date window
  fredline fetch UNRATE --start 2020-01-01 --end 2024-12-31

  # Show more of the most recent observations
  fredline fetch GDP --latest 12`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := fredclient.New(cfg.APIKey)
		if err := core.ExecuteFetch(rootCtx, cfg, client, core.DefaultStoreManager(), sess); err != nil {
			contract.LogFatal("Cannot fetch series", err)
		}
	},
}
