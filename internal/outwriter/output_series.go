package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesList outputs stored series summaries, dispatching based on the
// output format configured.
func PrintSeriesList(summaries []schema.SeriesSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONSeriesList(w, summaries)
		}, "Wrote JSON series list")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, seriesListHeader(), func(cw *csv.Writer) error {
				return writeCSVSeriesList(cw, summaries)
			})
		}, "Wrote CSV series list")
	default:
		// Default to human-readable table
		return printSeriesListTable(summaries)
	}
}

// printSeriesListTable prints summaries in a multi-column table.
func printSeriesListTable(summaries []schema.SeriesSummary) error {
	if len(summaries) == 0 {
		fmt.Println("No series stored.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Series", "Title", "Frequency", "Units", "Obs", "First", "Last"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, s := range summaries {
		row := []string{
			s.SeriesID,
			contract.TruncateLabel(s.Title, 40),
			s.Frequency,
			contract.TruncateLabel(s.Units, 24),
			fmt.Sprintf("%d", s.ObservationCount),
			s.FirstDate,
			s.LastDate,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintSeriesDetail outputs one series with its most recent observations,
// dispatching based on the output format configured.
func PrintSeriesDetail(summary schema.SeriesSummary, latest []schema.Observation, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONSeriesDetail(w, summary, latest)
		}, "Wrote JSON series detail")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"date", "value"}, func(cw *csv.Writer) error {
				return writeCSVObservations(cw, "", latest)
			})
		}, "Wrote CSV series detail")
	default:
		return printSeriesDetailTable(summary, latest)
	}
}

// printSeriesDetailTable prints metadata lines followed by an observation table.
func printSeriesDetailTable(summary schema.SeriesSummary, latest []schema.Observation) error {
	fmt.Printf("Series: %s\n", summary.SeriesID)
	fmt.Printf("Title: %s\n", summary.Title)
	fmt.Printf("Frequency: %s\n", summary.Frequency)
	fmt.Printf("Units: %s\n", summary.Units)
	fmt.Printf("Last Updated: %s\n", summary.LastUpdated)
	fmt.Printf("Observations: %d\n", summary.ObservationCount)

	if len(latest) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Date", "Value"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, obs := range latest {
		data = append(data, []string{obs.Date, obs.Value})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintObservations outputs full observation rows for one or more series,
// dispatching based on the output format configured. Parquet export is
// handled by the caller since it works on files rather than writers.
func PrintObservations(records []schema.SeriesRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON observations")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"series_id", "date", "value"}, func(cw *csv.Writer) error {
				for _, rec := range records {
					if err := writeCSVObservations(cw, rec.SeriesID, rec.Observations); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV observations")
	}
}
