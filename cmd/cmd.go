// Package cmd defines the command-line interface for fredline.
package cmd

import (
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the series subcommands to the parent series command
	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesShowCmd)
	seriesCmd.AddCommand(seriesDeleteCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-key", "", "FRED API key (prefer the FREDLINE_API_KEY env variable)")
	rootCmd.PersistentFlags().String("start", "", "Observation start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", "", "Observation end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntP("latest", "l", contract.DefaultLatest, "Number of most recent observations to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric values")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored series lines in charts (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().Int("height", contract.DefaultChartHeight, "Chart height in rows")
	chartCmd.Flags().Int("margin", contract.DefaultMargin, "Chart margin in cells")
	chartCmd.Flags().String("svg", "", "Optional path to write an SVG rendering to")
	chartCmd.Flags().String("file", "", "Chart a local CSV or JSON file instead of stored series")
	chartCmd.Flags().Bool("watch", false, "Watch --file for changes and re-render")
	chartCmd.Flags().String("probe", "", "Probe for the nearest point at 'x,y' in device coordinates")
	chartCmd.Flags().Float64("threshold", contract.DefaultThreshold, "Maximum probe hit distance in device units")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
