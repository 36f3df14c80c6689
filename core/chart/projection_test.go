package chart

import (
	"testing"

	"github.com/fredline/fredline/core/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectSeries(t *testing.T, width, height, margin int, list ...*series.Series) (*Model, *Projection) {
	t.Helper()
	m := NewModel()
	m.SetSeries(list)
	p := NewProjection()
	p.Project(m, width, height, margin)
	return m, p
}

func TestProjectLinearMapping(t *testing.T) {
	s := makeSeries("A",
		[2]string{"2020-01-01", "1.0"},
		[2]string{"2020-01-02", "2.0"},
		[2]string{"2020-01-03", "3.0"},
	)
	_, p := projectSeries(t, 200, 200, 50, s)

	pts := p.SeriesPoints(0)
	require.Len(t, pts, 3)

	// x spans [margin, width-margin] linearly in ordinal position.
	assert.InDelta(t, 50.0, pts[0].X, 1e-9)
	assert.InDelta(t, 100.0, pts[1].X, 1e-9)
	assert.InDelta(t, 150.0, pts[2].X, 1e-9)

	// y is inverted: larger value sits higher on screen (smaller y).
	assert.InDelta(t, 150.0, pts[0].Y, 1e-9)
	assert.InDelta(t, 100.0, pts[1].Y, 1e-9)
	assert.InDelta(t, 50.0, pts[2].Y, 1e-9)
}

// A single numeric observation must project without dividing by zero and land
// at a deterministic spot: centered horizontally, mid-scale vertically.
func TestProjectSinglePoint(t *testing.T) {
	s := makeSeries("A", [2]string{"2020-01-01", "7.5"})
	_, p := projectSeries(t, 600, 400, 60, s)

	pts := p.SeriesPoints(0)
	require.Len(t, pts, 1)
	assert.InDelta(t, 300.0, pts[0].X, 1e-9)
	assert.InDelta(t, 200.0, pts[0].Y, 1e-9)

	render := p.Render()
	assert.True(t, render.Degenerate)
	assert.False(t, render.Empty)
}

// All points sharing one value substitute a nominal span and render at a
// single well-defined height.
func TestProjectDegenerateRange(t *testing.T) {
	s := makeSeries("A",
		[2]string{"2020-01-01", "5.0"},
		[2]string{"2020-01-02", "5.0"},
		[2]string{"2020-01-03", "5.0"},
	)
	_, p := projectSeries(t, 200, 200, 50, s)

	pts := p.SeriesPoints(0)
	require.Len(t, pts, 3)
	for _, dp := range pts {
		assert.InDelta(t, 100.0, dp.Y, 1e-9)
	}
}

func TestProjectEmptyModel(t *testing.T) {
	m := NewModel()
	m.SetSeries(nil)
	p := NewProjection()
	p.Project(m, 200, 200, 50)

	render := p.Render()
	assert.True(t, render.Empty)
	assert.Empty(t, render.Series)

	_, ok := p.FindNearest(100, 100, 15)
	assert.False(t, ok)
}

// Projection still runs for a near-zero drawable area; the renderer is the
// one responsible for showing a placeholder.
func TestProjectTinyViewport(t *testing.T) {
	s := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "2.0"})
	_, p := projectSeries(t, 2, 2, 1, s)

	pts := p.SeriesPoints(0)
	require.Len(t, pts, 2)
}

func TestFindNearestWithinThreshold(t *testing.T) {
	s := makeSeries("A",
		[2]string{"2020-01-01", "1.0"},
		[2]string{"2020-01-02", "3.0"},
	)
	// Device points land at (50,150) and (150,50).
	_, p := projectSeries(t, 200, 200, 50, s)

	hit, ok := p.FindNearest(52, 148, 15)
	require.True(t, ok)
	assert.Equal(t, "A", hit.SeriesID)
	assert.Equal(t, 0, hit.SeriesIndex)
	assert.Equal(t, 0, hit.PointIndex)
	assert.Equal(t, "2020-01-01", hit.Date)
	assert.Equal(t, "1.0", hit.Value)
}

// The threshold is exclusive: a point exactly threshold away is no hit.
func TestFindNearestThresholdExclusive(t *testing.T) {
	s := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	_, p := projectSeries(t, 200, 200, 50, s)

	// Device point at (50,150); pointer exactly 10px away.
	_, ok := p.FindNearest(60, 150, 10)
	assert.False(t, ok)

	hit, ok := p.FindNearest(60, 150, 10.01)
	require.True(t, ok)
	assert.Equal(t, 0, hit.PointIndex)
}

func TestFindNearestOutOfRange(t *testing.T) {
	s := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	_, p := projectSeries(t, 200, 200, 50, s)

	_, ok := p.FindNearest(0, 0, 15)
	assert.False(t, ok)
}

// Two series with identical values project to identical device points; an
// equidistant pointer must resolve to the first series in active order.
func TestFindNearestTieBreakSeriesOrder(t *testing.T) {
	a := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	b := makeSeries("B", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	_, p := projectSeries(t, 200, 200, 50, a, b)

	hit, ok := p.FindNearest(52, 148, 15)
	require.True(t, ok)
	assert.Equal(t, "A", hit.SeriesID)
	assert.Equal(t, 0, hit.SeriesIndex)
}

// A pointer exactly equidistant from two points of one series resolves to the
// earlier point index.
func TestFindNearestTieBreakPointOrder(t *testing.T) {
	s := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	// Device points (50,150) and (150,50); (100,100) is equidistant from both.
	_, p := projectSeries(t, 200, 200, 50, s)

	hit, ok := p.FindNearest(100, 100, 80)
	require.True(t, ok)
	assert.Equal(t, 0, hit.PointIndex)
	assert.Equal(t, "2020-01-01", hit.Date)
}

// Re-projecting replaces the device-point cache in full; stale points must
// never answer queries after a model change.
func TestProjectInvalidatesCache(t *testing.T) {
	a := makeSeries("A", [2]string{"2020-01-01", "1.0"}, [2]string{"2020-01-02", "3.0"})
	b := makeSeries("B", [2]string{"2020-01-01", "100.0"}, [2]string{"2020-01-02", "300.0"})

	m := NewModel()
	m.SetSeries([]*series.Series{a})
	p := NewProjection()
	p.Project(m, 200, 200, 50)

	hit, ok := p.FindNearest(52, 148, 15)
	require.True(t, ok)
	assert.Equal(t, "A", hit.SeriesID)

	m.SetSeries([]*series.Series{b})
	p.Project(m, 200, 200, 50)

	hit, ok = p.FindNearest(52, 148, 15)
	require.True(t, ok)
	assert.Equal(t, "B", hit.SeriesID)
	assert.Equal(t, "100.0", hit.Value)
}

func TestRenderCarriesDatesAndValues(t *testing.T) {
	s := makeSeries("A",
		[2]string{"2020-01-01", "1.0"},
		[2]string{"2020-01-02", "."},
		[2]string{"2020-01-03", "3.0"},
	)
	_, p := projectSeries(t, 200, 200, 50, s)

	render := p.Render()
	require.Len(t, render.Series, 1)
	sr := render.Series[0]
	// The sentinel observation is dropped, so dates and values align with the
	// two projected points.
	assert.Equal(t, []string{"2020-01-01", "2020-01-03"}, sr.Dates)
	assert.Equal(t, []string{"1.0", "3.0"}, sr.Values)
	assert.Len(t, sr.Points, 2)
	assert.Equal(t, 1.0, render.MinValue)
	assert.Equal(t, 3.0, render.MaxValue)
}
