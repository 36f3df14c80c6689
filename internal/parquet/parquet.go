// Package parquet provides data structures and functions for exporting
// series observations to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/fredline/fredline/schema"
	"github.com/parquet-go/parquet-go"
)

// ObservationRow represents a single observation of a stored series.
// This struct maps to one row of a Parquet observation export.
type ObservationRow struct {
	// SeriesID is the stable series key
	SeriesID string `parquet:"series_id,snappy"`

	// Title is the series title at export time
	Title string `parquet:"title,snappy"`

	// Frequency is the series frequency label
	Frequency string `parquet:"frequency,snappy"`

	// Units is the series unit label
	Units string `parquet:"units,snappy"`

	// Date is the observation date (YYYY-MM-DD)
	Date string `parquet:"date,snappy"`

	// Value is the raw observation value; non-numeric markers are preserved
	Value string `parquet:"value,snappy"`

	// CreatedAt is the Unix time the series was saved
	CreatedAt int64 `parquet:"created_at,snappy"`
}

// ConvertSeriesRecords flattens series records into observation rows.
func ConvertSeriesRecords(records []schema.SeriesRecord) []ObservationRow {
	var rows []ObservationRow
	for _, rec := range records {
		for _, obs := range rec.Observations {
			rows = append(rows, ObservationRow{
				SeriesID:  rec.SeriesID,
				Title:     rec.Title,
				Frequency: rec.Frequency,
				Units:     rec.Units,
				Date:      obs.Date,
				Value:     obs.Value,
				CreatedAt: rec.CreatedAt,
			})
		}
	}
	return rows
}

// WriteObservationsParquet writes observation rows to a Parquet file.
func WriteObservationsParquet(data []ObservationRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ObservationRow struct tags
	writer := parquet.NewGenericWriter[ObservationRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
