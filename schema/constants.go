package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the series store.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MaxActiveSeries caps how many series a single chart can overlay.
const MaxActiveSeries = 5

// DefaultLatestObservations is how many trailing observations summaries show.
const DefaultLatestObservations = 5

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ChartColor is one palette entry. Name drives terminal rendering, Hex drives
// SVG rendering, so both surfaces agree on per-series colors.
type ChartColor struct {
	Name string
	Hex  string
}

// ChartPalette is the fixed series palette, assigned by position in the
// active-series list and cycled when more series than colors exist.
var ChartPalette = []ChartColor{
	{Name: "blue", Hex: "#2196F3"},
	{Name: "red", Hex: "#F44336"},
	{Name: "green", Hex: "#4CAF50"},
	{Name: "orange", Hex: "#FF9800"},
	{Name: "purple", Hex: "#9C27B0"},
}
