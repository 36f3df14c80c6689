package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fredline/fredline/schema"
)

// seriesListHeader returns the CSV header for series listings.
func seriesListHeader() []string {
	return []string{
		"series_id",
		"title",
		"frequency",
		"units",
		"last_updated",
		"observations",
		"first_date",
		"last_date",
	}
}

// writeJSONSeriesList marshals series summaries to JSON and writes them.
func writeJSONSeriesList(w io.Writer, summaries []schema.SeriesSummary) error {
	return writeJSON(w, summaries)
}

// writeCSVSeriesList writes series summary rows to a CSV writer.
func writeCSVSeriesList(w *csv.Writer, summaries []schema.SeriesSummary) error {
	for _, s := range summaries {
		row := []string{
			s.SeriesID,
			s.Title,
			s.Frequency,
			s.Units,
			s.LastUpdated,
			fmt.Sprintf("%d", s.ObservationCount),
			s.FirstDate,
			s.LastDate,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// seriesDetail is the JSON shape for a single series with recent observations.
type seriesDetail struct {
	Summary schema.SeriesSummary `json:"summary"`
	Latest  []schema.Observation `json:"latest"`
}

// writeJSONSeriesDetail marshals one series detail to JSON and writes it.
func writeJSONSeriesDetail(w io.Writer, summary schema.SeriesSummary, latest []schema.Observation) error {
	return writeJSON(w, seriesDetail{Summary: summary, Latest: latest})
}

// writeCSVObservations writes observation rows to a CSV writer. When seriesID
// is empty the rows carry only date and value columns.
func writeCSVObservations(w *csv.Writer, seriesID string, observations []schema.Observation) error {
	for _, obs := range observations {
		var row []string
		if seriesID == "" {
			row = []string{obs.Date, obs.Value}
		} else {
			row = []string{seriesID, obs.Date, obs.Value}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
