package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeriesIDFromPath(t *testing.T) {
	assert.Equal(t, "GDP", SeriesIDFromPath("data/gdp.csv"))
	assert.Equal(t, "UNRATE", SeriesIDFromPath("/tmp/unrate.json"))
	assert.Equal(t, "SERIES", SeriesIDFromPath("series"))
}

func TestLoadCSVWithHeader(t *testing.T) {
	path := writeFile(t, "gdp.csv", "date,value\n2024-01-01,27956.998\n2024-04-01,28296.967\n")

	s, err := LoadCSV(path, "")
	require.NoError(t, err)

	assert.Equal(t, "GDP", s.ID())
	require.Equal(t, 2, s.ObservationCount())
	assert.Equal(t, "2024-01-01", s.Observation(0).Date)
	assert.Equal(t, "27956.998", s.Observation(0).Value)
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "unrate.csv", "2024-01-01,3.7\n2024-02-01,3.9\n")

	s, err := LoadCSV(path, "JOBLESS")
	require.NoError(t, err)

	assert.Equal(t, "JOBLESS", s.ID())
	assert.Equal(t, 2, s.ObservationCount())
}

func TestLoadCSVKeepsSentinelValues(t *testing.T) {
	path := writeFile(t, "gdp.csv", "2024-01-01,27956.998\n2024-04-01,.\n")

	s, err := LoadCSV(path, "")
	require.NoError(t, err)
	assert.Equal(t, ".", s.Observation(1).Value)
}

func TestLoadCSVBadDate(t *testing.T) {
	path := writeFile(t, "gdp.csv", "01/02/2024,27956.998\n")

	_, err := LoadCSV(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestLoadCSVShortRow(t *testing.T) {
	path := writeFile(t, "gdp.csv", "2024-01-01\n")

	_, err := LoadCSV(path, "")
	assert.Error(t, err)
}

func TestLoadJSONCombinedPayload(t *testing.T) {
	payload := `{
		"seriess": [{"id": "GDP", "title": "Gross Domestic Product", "frequency": "Quarterly", "units": "Billions of Dollars", "last_updated": "2025-06-26 07:31:01-05"}],
		"observations": [
			{"date": "2024-01-01", "value": "27956.998"},
			{"date": "2024-04-01", "value": "28296.967"}
		]
	}`
	path := writeFile(t, "gdp.json", payload)

	s, err := LoadJSON(path, "")
	require.NoError(t, err)

	assert.Equal(t, "GDP", s.ID())
	assert.Equal(t, "Gross Domestic Product", s.Title())
	assert.Equal(t, 2, s.ObservationCount())
}

func TestLoadJSONWithoutMetadataFallsBackToFilename(t *testing.T) {
	payload := `{"observations": [{"date": "2024-01-01", "value": "3.7"}]}`
	path := writeFile(t, "unrate.json", payload)

	s, err := LoadJSON(path, "")
	require.NoError(t, err)

	assert.Equal(t, "UNRATE", s.ID())
	assert.Equal(t, "UNRATE", s.Title())
}

func TestLoadJSONNoObservations(t *testing.T) {
	path := writeFile(t, "empty.json", `{"observations": []}`)

	_, err := LoadJSON(path, "")
	assert.Error(t, err)
}

func TestLoadFileDispatch(t *testing.T) {
	csvPath := writeFile(t, "gdp.csv", "2024-01-01,27956.998\n")
	s, err := LoadFile(csvPath, "")
	require.NoError(t, err)
	assert.Equal(t, 1, s.ObservationCount())

	jsonPath := writeFile(t, "gdp.json", `{"observations": [{"date": "2024-01-01", "value": "1.0"}]}`)
	s, err = LoadFile(jsonPath, "")
	require.NoError(t, err)
	assert.Equal(t, 1, s.ObservationCount())
}

func TestWatchFileSeesWrites(t *testing.T) {
	path := writeFile(t, "gdp.csv", "2024-01-01,1.0\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, func() error {
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01,2.0\n"), 0o644))

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("watcher did not report the write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchFileStopsOnCallbackError(t *testing.T) {
	path := writeFile(t, "gdp.csv", "2024-01-01,1.0\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, func() error {
			return os.ErrClosed
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01,2.0\n"), 0o644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, os.ErrClosed)
	case <-ctx.Done():
		t.Fatal("watcher did not stop on callback error")
	}
}
