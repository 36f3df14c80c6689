// Package schema has models, constants and shared types for all parts of fredline.
package schema

// Observation is a single dated reading within a series.
// Both fields stay raw strings: upstream data uses sentinel strings like "."
// for missing values, and those must survive untouched for display even though
// the chart math drops them.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// SeriesRecord is the single adapter shape that every series source produces.
// Remote fetch glue, CSV/JSON imports and store hydration all converge here,
// so the core needs exactly one construction path for external data.
type SeriesRecord struct {
	SeriesID     string        `json:"seriesId"`
	Title        string        `json:"title"`
	Frequency    string        `json:"frequency"`
	Units        string        `json:"units"`
	LastUpdated  string        `json:"lastUpdated"`
	Observations []Observation `json:"observations"`
	CreatedAt    int64         `json:"createdAt"` // Unix seconds when the record entered the system
}

// SeriesSummary is a listing row for a stored series.
type SeriesSummary struct {
	SeriesID         string `json:"seriesId"`
	Title            string `json:"title"`
	Frequency        string `json:"frequency"`
	Units            string `json:"units"`
	LastUpdated      string `json:"lastUpdated"`
	ObservationCount int    `json:"observationCount"`
	FirstDate        string `json:"firstDate"`
	LastDate         string `json:"lastDate"`
}
