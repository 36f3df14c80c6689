package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/contract"
	"github.com/spf13/cobra"
)

// chartCmd renders stored series as charts.
var chartCmd = &cobra.Command{
	Use:   "chart [series-id...]",
	Short: "Render series as a terminal chart, with optional SVG output.",
	Long: `Draw one or more series as a line chart in the terminal.

Series are resolved from the current invocation first (anything just
fetched or imported), then from the configured store. Up to 5 series
can share one chart, each with a stable color and marker.

Options:
- --svg writes an 800x400 SVG rendering alongside the terminal chart
- --file charts a local CSV/JSON file without storing it
- --watch re-renders whenever the --file target changes
- --probe x,y reports the data point nearest to a device coordinate
  in the 800x400 SVG space, within --threshold units

Examples:
  # Chart a stored series
  fredline chart GDP

  # Compare several series
  fredline chart GDP UNRATE --height 30

  # Write an SVG next to the terminal rendering
  fredline chart GDP --svg gdp.svg

  # Live-preview a file while editing it
  fredline chart --file data/gdp.csv --watch

  # Identify the point near a chart location
  fredline chart GDP --probe 400,200 --threshold 25`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg, core.DefaultStoreManager(), sess); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}
