package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fredline/fredline/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 2
	DefaultLatest      = schema.DefaultLatestObservations
	DefaultChartWidth  = 0 // 0 = auto-detect terminal width
	DefaultChartHeight = 24
	DefaultMargin      = 6
	DefaultThreshold   = 15.0
	MaxLatest          = 1000
)

// DateFormat is the observation date representation used by the FRED API.
const DateFormat = "2006-01-02"

// DefaultFetchTimeout bounds a single remote fetch, covering both the
// metadata request and the observations request.
const DefaultFetchTimeout = 10 * time.Second

// Config holds the runtime configuration for a command invocation.
// This struct remains the "final, validated" config.
type Config struct {
	SeriesIDs []string // Positional series IDs, upper-cased
	APIKey    string   // Please use env var as this is plaintext

	StartDate string // YYYY-MM-DD or empty for unbounded
	EndDate   string // YYYY-MM-DD or empty for unbounded

	Latest     int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	ChartHeight int
	Margin      int
	SVGFile     string
	ImportFile  string
	Watch       bool

	ProbeSet  bool
	ProbeX    float64
	ProbeY    float64
	Threshold float64

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored series lines in terminal charts
}

// Clone returns a deep copy of the configuration, so callers can adjust
// per-request settings without mutating the shared base.
func (c *Config) Clone() *Config {
	clone := *c
	if c.SeriesIDs != nil {
		clone.SeriesIDs = make([]string, len(c.SeriesIDs))
		copy(clone.SeriesIDs, c.SeriesIDs)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SeriesArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	APIKey         string `mapstructure:"api-key"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`
	Latest         int    `mapstructure:"latest"`

	// --- Fields from chartCmd.Flags() ---
	Height    int     `mapstructure:"height"`
	Margin    int     `mapstructure:"margin"`
	SVGFile   string  `mapstructure:"svg"`
	File      string  `mapstructure:"file"`
	Watch     bool    `mapstructure:"watch"`
	Probe     string  `mapstructure:"probe"`
	Threshold float64 `mapstructure:"threshold"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := processChartInputs(cfg, input); err != nil {
		return err
	}
	if err := processSeriesArgs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// RevalidateDateRange re-validates an already-populated date window. Used by
// the MCP server, where dates arrive per request instead of through flags.
func RevalidateDateRange(cfg *Config) error {
	input := &ConfigRawInput{Start: cfg.StartDate, End: cfg.EndDate}
	return processDateRange(cfg, input)
}

// validateSimpleInputs processes and validates all non-chart fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.APIKey = strings.TrimSpace(input.APIKey)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Latest Validation ---
	if input.Latest <= 0 || input.Latest > MaxLatest {
		return fmt.Errorf("latest must be greater than 0 and cannot exceed %d (received %d)", MaxLatest, input.Latest)
	}
	cfg.Latest = input.Latest

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 8 {
		return fmt.Errorf("precision must be between 0 and 8 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processDateRange validates the observation date window.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	var start, end time.Time

	if input.Start != "" {
		t, err := time.Parse(DateFormat, input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date '%s'. Expected YYYY-MM-DD: %v", input.Start, err)
		}
		start = t
		cfg.StartDate = input.Start
	}

	if input.End != "" {
		t, err := time.Parse(DateFormat, input.End)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. Expected YYYY-MM-DD: %v", input.End, err)
		}
		end = t
		cfg.EndDate = input.End
	}

	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartDate, cfg.EndDate)
	}

	return nil
}

// processChartInputs validates viewport geometry and the probe flag.
func processChartInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Height < 0 {
		return fmt.Errorf("height cannot be negative (received %d)", input.Height)
	}
	cfg.ChartHeight = input.Height

	if input.Margin < 0 {
		return fmt.Errorf("margin cannot be negative (received %d)", input.Margin)
	}
	cfg.Margin = input.Margin

	cfg.SVGFile = input.SVGFile
	cfg.ImportFile = input.File
	cfg.Watch = input.Watch
	if cfg.Watch && cfg.ImportFile == "" {
		return fmt.Errorf("--watch requires --file to name the file to watch")
	}

	if input.Threshold <= 0 {
		return fmt.Errorf("threshold must be greater than 0 (received %g)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	if input.Probe != "" {
		x, y, err := ParseProbe(input.Probe)
		if err != nil {
			return fmt.Errorf("invalid --probe value: %w", err)
		}
		cfg.ProbeSet = true
		cfg.ProbeX = x
		cfg.ProbeY = y
	}

	return nil
}

// processSeriesArgs normalizes positional series IDs and enforces the
// active-series limit.
func processSeriesArgs(cfg *Config, input *ConfigRawInput) error {
	seen := make(map[string]bool)
	for _, arg := range input.SeriesArgs {
		id := strings.ToUpper(strings.TrimSpace(arg))
		if id == "" {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		cfg.SeriesIDs = append(cfg.SeriesIDs, id)
	}

	if len(cfg.SeriesIDs) > schema.MaxActiveSeries {
		return fmt.Errorf("at most %d series can be displayed at once (received %d)", schema.MaxActiveSeries, len(cfg.SeriesIDs))
	}

	return nil
}

// ParseProbe parses a device coordinate pair like "210.5,118" into X and Y.
func ParseProbe(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 'x,y' coordinate pair, got '%s'", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate '%s': %w", parts[0], err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate '%s': %w", parts[1], err)
	}
	return x, y, nil
}
