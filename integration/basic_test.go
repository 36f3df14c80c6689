//go:build basic

// Package integration contains integration tests for fredline.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFredlineSQLiteWorkflow exercises the full import/list/chart/export cycle
// against the default SQLite backend.
func TestFredlineSQLiteWorkflow(t *testing.T) {
	workDir := t.TempDir()

	// Isolate the store under the temp home
	t.Setenv("HOME", workDir)

	csvPath := writeSampleCSV(t, workDir, "gdp.csv")

	// Import the sample file
	out, err := runFredlineCommand(t, workDir, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "GDP")

	// The imported series shows up in listings
	out, err = runFredlineCommand(t, workDir, "series", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GDP")
	assert.Contains(t, out, "2024-01-01")

	// Chart renders from the store, with a probe against the device space
	out, err = runFredlineCommand(t, workDir, "chart", "GDP", "--probe", "400,200", "--threshold", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "GDP")
	assert.Contains(t, out, "Nearest point")

	// SVG output lands on disk
	svgPath := filepath.Join(workDir, "gdp.svg")
	_, err = runFredlineCommand(t, workDir, "chart", "GDP", "--svg", svgPath)
	require.NoError(t, err)
	svgData, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svgData), "<svg")

	// Export everything as CSV
	exportPath := filepath.Join(workDir, "out.csv")
	_, err = runFredlineCommand(t, workDir, "export", "--output", "csv", "--output-file", exportPath)
	require.NoError(t, err)
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "GDP,2024-01-01,100.0")

	// Store status reflects the stored data
	out, err = runFredlineCommand(t, workDir, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")

	// Delete removes the series
	_, err = runFredlineCommand(t, workDir, "series", "delete", "GDP")
	require.NoError(t, err)
	out, err = runFredlineCommand(t, workDir, "series", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "2024-01-01")
}

// TestFredlineVersion sanity-checks the binary itself.
func TestFredlineVersion(t *testing.T) {
	out, err := runFredlineCommand(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fredline CLI")
}
