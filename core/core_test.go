package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/internal/iocache"
	"github.com/fredline/fredline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const metaPayload = `{"seriess": [{"id": "GDP", "title": "Gross Domestic Product", "frequency": "Quarterly", "units": "Billions of Dollars", "last_updated": "2025-06-26 07:31:01-05"}]}`

const obsPayload = `{"observations": [
	{"date": "2024-01-01", "value": "27956.998"},
	{"date": "2024-04-01", "value": "28296.967"}
]}`

func testCfg() *contract.Config {
	return &contract.Config{
		APIKey:      "test-key",
		Latest:      contract.DefaultLatest,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
		Width:       80,
		ChartHeight: contract.DefaultChartHeight,
		Margin:      contract.DefaultMargin,
		Threshold:   contract.DefaultThreshold,
	}
}

func mockManager(store *iocache.MockSeriesStore) *iocache.MockStoreManager {
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetSeriesStore").Return(store)
	return mgr
}

func TestExecuteFetchPersistsAndCaches(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}

	client := &contract.MockFredClient{}
	client.On("FetchSeriesMetadata", mock.Anything, "GDP").Return(metaPayload, nil)
	client.On("FetchSeriesObservations", mock.Anything, "GDP", "", "").Return(obsPayload, nil)

	store := &iocache.MockSeriesStore{}
	store.On("SaveSeries", mock.MatchedBy(func(rec schema.SeriesRecord) bool {
		return rec.SeriesID == "GDP" && len(rec.Observations) == 2
	})).Return(nil)

	sess := NewSession()
	require.NoError(t, ExecuteFetch(context.Background(), cfg, client, mockManager(store), sess))

	client.AssertExpectations(t)
	store.AssertExpectations(t)

	cached := sess.Get("GDP")
	require.NotNil(t, cached)
	assert.Equal(t, "Gross Domestic Product", cached.Title())
}

func TestExecuteFetchPassesDateWindow(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}
	cfg.StartDate = "2020-01-01"
	cfg.EndDate = "2024-12-31"

	client := &contract.MockFredClient{}
	client.On("FetchSeriesMetadata", mock.Anything, "GDP").Return(metaPayload, nil)
	client.On("FetchSeriesObservations", mock.Anything, "GDP", "2020-01-01", "2024-12-31").Return(obsPayload, nil)

	require.NoError(t, ExecuteFetch(context.Background(), cfg, client, nil, NewSession()))
	client.AssertExpectations(t)
}

func TestExecuteFetchNoMetadataFallsBackToRequestedID(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"UNRATE"}

	client := &contract.MockFredClient{}
	client.On("FetchSeriesMetadata", mock.Anything, "UNRATE").Return(`{"seriess": []}`, nil)
	client.On("FetchSeriesObservations", mock.Anything, "UNRATE", "", "").Return(obsPayload, nil)

	sess := NewSession()
	require.NoError(t, ExecuteFetch(context.Background(), cfg, client, nil, sess))

	cached := sess.Get("UNRATE")
	require.NotNil(t, cached)
	assert.Equal(t, "UNRATE", cached.ID())
}

func TestExecuteFetchEmptyObservations(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}

	client := &contract.MockFredClient{}
	client.On("FetchSeriesMetadata", mock.Anything, "GDP").Return(metaPayload, nil)
	client.On("FetchSeriesObservations", mock.Anything, "GDP", "", "").Return(`{"observations": []}`, nil)

	err := ExecuteFetch(context.Background(), cfg, client, nil, NewSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no observations")
}

func TestExecuteFetchRequiresAPIKey(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}
	cfg.APIKey = ""

	err := ExecuteFetch(context.Background(), cfg, &contract.MockFredClient{}, nil, NewSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestExecuteFetchRequiresSeries(t *testing.T) {
	err := ExecuteFetch(context.Background(), testCfg(), &contract.MockFredClient{}, nil, NewSession())
	assert.Error(t, err)
}

func TestResolveSeriesPrefersSession(t *testing.T) {
	sess := NewSession()
	cached := sessionSeries("GDP", schema.Observation{Date: "2024-01-01", Value: "1.0"})
	sess.Put(cached)

	store := &iocache.MockSeriesStore{}
	s, err := resolveSeries("GDP", mockManager(store), sess)
	require.NoError(t, err)
	assert.Same(t, cached, s)
	store.AssertNotCalled(t, "GetSeries", mock.Anything)
}

func TestResolveSeriesFallsBackToStore(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	store.On("GetSeries", "GDP").Return(schema.SeriesRecord{
		SeriesID:     "GDP",
		Title:        "Gross Domestic Product",
		Observations: []schema.Observation{{Date: "2024-01-01", Value: "1.0"}},
	}, nil)

	s, err := resolveSeries("GDP", mockManager(store), NewSession())
	require.NoError(t, err)
	assert.Equal(t, "GDP", s.ID())
	store.AssertExpectations(t)
}

func TestResolveSeriesNotFound(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	store.On("GetSeries", "GDP").Return(schema.SeriesRecord{}, contract.ErrSeriesNotFound)

	_, err := resolveSeries("GDP", mockManager(store), NewSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestExecuteChartFromSession(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}

	sess := NewSession()
	sess.Put(sessionSeries("GDP",
		schema.Observation{Date: "2024-01-01", Value: "1.0"},
		schema.Observation{Date: "2024-04-01", Value: "2.0"},
		schema.Observation{Date: "2024-07-01", Value: "3.0"},
	))

	require.NoError(t, ExecuteChart(context.Background(), cfg, nil, sess))
}

func TestExecuteChartWithProbeAndSVG(t *testing.T) {
	cfg := testCfg()
	cfg.SeriesIDs = []string{"GDP"}
	cfg.SVGFile = filepath.Join(t.TempDir(), "chart.svg")
	cfg.ProbeSet = true
	// Middle observation of three maps to the horizontal center of the
	// canonical device space
	cfg.ProbeX = DeviceWidth / 2
	cfg.ProbeY = DeviceHeight / 2
	cfg.Threshold = 50

	sess := NewSession()
	sess.Put(sessionSeries("GDP",
		schema.Observation{Date: "2024-01-01", Value: "1.0"},
		schema.Observation{Date: "2024-04-01", Value: "2.0"},
		schema.Observation{Date: "2024-07-01", Value: "3.0"},
	))

	require.NoError(t, ExecuteChart(context.Background(), cfg, nil, sess))

	data, err := os.ReadFile(cfg.SVGFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "polyline")
}

func TestExecuteChartRequiresInput(t *testing.T) {
	err := ExecuteChart(context.Background(), testCfg(), nil, NewSession())
	assert.Error(t, err)
}

func TestExecuteChartFromImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.csv")
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01,1.0\n2024-04-01,2.0\n"), 0o644))

	cfg := testCfg()
	cfg.ImportFile = path

	require.NoError(t, ExecuteChart(context.Background(), cfg, nil, NewSession()))
}

func TestExecuteImportPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.csv")
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01,1.0\n"), 0o644))

	store := &iocache.MockSeriesStore{}
	store.On("SaveSeries", mock.MatchedBy(func(rec schema.SeriesRecord) bool {
		return rec.SeriesID == "GDP"
	})).Return(nil)

	sess := NewSession()
	require.NoError(t, ExecuteImport(testCfg(), mockManager(store), sess, []string{path}))

	store.AssertExpectations(t)
	assert.NotNil(t, sess.Get("GDP"))
}

func TestExecuteExportParquet(t *testing.T) {
	cfg := testCfg()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.parquet")
	cfg.SeriesIDs = []string{"GDP"}

	sess := NewSession()
	sess.Put(sessionSeries("GDP",
		schema.Observation{Date: "2024-01-01", Value: "1.0"},
		schema.Observation{Date: "2024-04-01", Value: "2.0"},
	))

	require.NoError(t, ExecuteExport(cfg, nil, sess))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExecuteExportParquetRequiresOutputFile(t *testing.T) {
	cfg := testCfg()
	cfg.Output = schema.ParquetOut
	cfg.SeriesIDs = []string{"GDP"}

	sess := NewSession()
	sess.Put(sessionSeries("GDP", schema.Observation{Date: "2024-01-01", Value: "1.0"}))

	err := ExecuteExport(cfg, nil, sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestExecuteExportWholeStore(t *testing.T) {
	cfg := testCfg()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.csv")

	store := &iocache.MockSeriesStore{}
	store.On("ListSeries").Return([]schema.SeriesSummary{{SeriesID: "GDP"}}, nil)
	store.On("GetSeries", "GDP").Return(schema.SeriesRecord{
		SeriesID:     "GDP",
		Observations: []schema.Observation{{Date: "2024-01-01", Value: "1.0"}},
	}, nil)

	require.NoError(t, ExecuteExport(cfg, mockManager(store), NewSession()))
	store.AssertExpectations(t)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GDP,2024-01-01,1.0")
}

func TestExecuteSeriesListUsesStore(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	store.On("ListSeries").Return([]schema.SeriesSummary{{SeriesID: "GDP", Title: "Gross Domestic Product"}}, nil)

	require.NoError(t, ExecuteSeriesList(testCfg(), mockManager(store)))
	store.AssertExpectations(t)
}

func TestExecuteSeriesDelete(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	store.On("DeleteSeries", "GDP").Return(nil)

	require.NoError(t, ExecuteSeriesDelete(mockManager(store), "GDP"))
	store.AssertExpectations(t)
}
