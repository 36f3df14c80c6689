// Package importer loads series from local CSV and JSON files.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fredline/fredline/core/docview"
	"github.com/fredline/fredline/core/series"
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
)

// SeriesIDFromPath derives a series ID from a file name.
// "data/gdp.csv" becomes "GDP".
func SeriesIDFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.ToUpper(strings.TrimSuffix(base, ext))
}

// LoadCSV reads a two-column date,value file into a series. An optional
// header row is skipped. Rows must use the YYYY-MM-DD date format.
func LoadCSV(path, seriesID string) (*series.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}

	var observations []schema.Observation
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d in %s has %d columns, expected 2", i+1, path, len(row))
		}
		date := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])

		// Skip a header row
		if i == 0 && strings.EqualFold(date, "date") {
			continue
		}

		if _, err := time.Parse(contract.DateFormat, date); err != nil {
			return nil, fmt.Errorf("row %d in %s has invalid date '%s'. Expected YYYY-MM-DD", i+1, path, date)
		}
		observations = append(observations, schema.Observation{Date: date, Value: value})
	}

	if seriesID == "" {
		seriesID = SeriesIDFromPath(path)
	}

	return series.NewFromRecord(schema.SeriesRecord{
		SeriesID:     seriesID,
		Title:        seriesID,
		Observations: observations,
	}), nil
}

// LoadJSON reads a FRED-shaped JSON payload into a series. The file may
// carry both the "seriess" metadata block and the "observations" block in
// a single document.
func LoadJSON(path, seriesID string) (*series.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	view := docview.New(string(data))
	s := series.NewFromJSON(view, view)

	if s.ObservationCount() == 0 {
		return nil, fmt.Errorf("no observations found in %s", path)
	}

	rec := s.Record()
	if seriesID != "" {
		rec.SeriesID = seriesID
	} else if rec.SeriesID == "" {
		rec.SeriesID = SeriesIDFromPath(path)
	}
	if rec.Title == "" {
		rec.Title = rec.SeriesID
	}

	return series.NewFromRecord(rec), nil
}

// LoadFile dispatches on the file extension. ".json" loads as a FRED
// payload, anything else as CSV.
func LoadFile(path, seriesID string) (*series.Series, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path, seriesID)
	}
	return LoadCSV(path, seriesID)
}
