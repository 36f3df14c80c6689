// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeriesList prints stored series summaries using the configured output format.
func (ow *OutWriter) WriteSeriesList(summaries []schema.SeriesSummary, cfg *contract.Config) error {
	return PrintSeriesList(summaries, cfg)
}

// WriteSeriesDetail prints one series with its latest observations using the
// configured output format.
func (ow *OutWriter) WriteSeriesDetail(summary schema.SeriesSummary, latest []schema.Observation, cfg *contract.Config) error {
	return PrintSeriesDetail(summary, latest, cfg)
}

// WriteObservations prints full observation rows for export using the
// configured output format.
func (ow *OutWriter) WriteObservations(records []schema.SeriesRecord, cfg *contract.Config) error {
	return PrintObservations(records, cfg)
}

// WriteChart prints a rendered chart to the terminal.
func (ow *OutWriter) WriteChart(render schema.ChartRender, cfg *contract.Config) error {
	return PrintChart(render, cfg)
}

// WriteSVGChart writes a rendered chart to the SVG file configured in cfg.
func (ow *OutWriter) WriteSVGChart(render schema.ChartRender, cfg *contract.Config) error {
	return PrintSVGChart(render, cfg)
}

// WriteNearest prints the result of a nearest-point probe.
func (ow *OutWriter) WriteNearest(hit schema.NearestHit, found bool, cfg *contract.Config) error {
	return PrintNearest(hit, found, cfg)
}
