package parquet

import (
	"os"
	"path/filepath"
	"testing"

	fschema "github.com/fredline/fredline/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(ObservationRow))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"series_id",
		"title",
		"frequency",
		"units",
		"date",
		"value",
		"created_at",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertSeriesRecords(t *testing.T) {
	records := []fschema.SeriesRecord{
		{
			SeriesID:  "GDP",
			Title:     "Gross Domestic Product",
			Frequency: "Quarterly",
			Units:     "Billions of Dollars",
			CreatedAt: 1756600000,
			Observations: []fschema.Observation{
				{Date: "2024-01-01", Value: "27956.998"},
				{Date: "2024-04-01", Value: "."},
			},
		},
		{
			SeriesID: "UNRATE",
			Observations: []fschema.Observation{
				{Date: "2024-01-01", Value: "3.7"},
			},
		},
	}

	rows := ConvertSeriesRecords(records)
	require.Len(t, rows, 3)
	assert.Equal(t, "GDP", rows[0].SeriesID)
	assert.Equal(t, "27956.998", rows[0].Value)
	assert.Equal(t, ".", rows[1].Value)
	assert.Equal(t, "UNRATE", rows[2].SeriesID)
}

func TestWriteObservationsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "observations.parquet")

	rows := []ObservationRow{
		{SeriesID: "GDP", Title: "Gross Domestic Product", Date: "2024-01-01", Value: "27956.998", CreatedAt: 1756600000},
		{SeriesID: "GDP", Title: "Gross Domestic Product", Date: "2024-04-01", Value: "28296.967", CreatedAt: 1756600000},
	}
	require.NoError(t, WriteObservationsParquet(rows, outputPath))

	// Read the file back and verify contents
	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[ObservationRow](f)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())

	got := make([]ObservationRow, 2)
	n, _ := reader.Read(got)
	require.Equal(t, 2, n)
	assert.Equal(t, rows[0], got[0])
	assert.Equal(t, rows[1], got[1])
	assert.Positive(t, info.Size())
}

func TestWriteObservationsParquetEmpty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteObservationsParquet(nil, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}
