package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/fredline/fredline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummaries() []schema.SeriesSummary {
	return []schema.SeriesSummary{
		{
			SeriesID:         "GDP",
			Title:            "Gross Domestic Product",
			Frequency:        "Quarterly",
			Units:            "Billions of Dollars",
			LastUpdated:      "2025-06-26 07:31:01-05",
			ObservationCount: 3,
			FirstDate:        "2024-01-01",
			LastDate:         "2024-07-01",
		},
		{
			SeriesID:         "UNRATE",
			Title:            "Unemployment Rate",
			Frequency:        "Monthly",
			Units:            "Percent",
			ObservationCount: 2,
			FirstDate:        "2024-01-01",
			LastDate:         "2024-02-01",
		},
	}
}

func TestWriteCSVSeriesList(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(seriesListHeader()))
	require.NoError(t, writeCSVSeriesList(w, sampleSummaries()))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "series_id", rows[0][0])
	assert.Equal(t, "GDP", rows[1][0])
	assert.Equal(t, "3", rows[1][5])
	assert.Equal(t, "UNRATE", rows[2][0])
}

func TestWriteJSONSeriesList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONSeriesList(&buf, sampleSummaries()))

	var decoded []schema.SeriesSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "GDP", decoded[0].SeriesID)
	assert.Equal(t, 3, decoded[0].ObservationCount)
}

func TestWriteJSONSeriesDetail(t *testing.T) {
	var buf bytes.Buffer
	latest := []schema.Observation{{Date: "2024-07-01", Value: "28624.069"}}
	require.NoError(t, writeJSONSeriesDetail(&buf, sampleSummaries()[0], latest))

	var decoded seriesDetail
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GDP", decoded.Summary.SeriesID)
	require.Len(t, decoded.Latest, 1)
	assert.Equal(t, "28624.069", decoded.Latest[0].Value)
}

func TestWriteCSVObservationsWithAndWithoutID(t *testing.T) {
	observations := []schema.Observation{
		{Date: "2024-01-01", Value: "1.0"},
		{Date: "2024-02-01", Value: "."},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVObservations(w, "GDP", observations))
	w.Flush()
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"GDP", "2024-01-01", "1.0"}, rows[0])
	assert.Equal(t, []string{"GDP", "2024-02-01", "."}, rows[1])

	buf.Reset()
	w = csv.NewWriter(&buf)
	require.NoError(t, writeCSVObservations(w, "", observations))
	w.Flush()
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "1.0"}, rows[0])
}
