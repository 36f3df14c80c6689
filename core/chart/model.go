// Package chart normalizes one or more time series onto a shared value axis,
// maps their points into a device coordinate space, and resolves
// nearest-point queries for hover interaction. The package is synchronous and
// single-threaded: SetSeries, Project and FindNearest must not run
// concurrently against the same instances.
package chart

import (
	"math"
	"strconv"

	"github.com/fredline/fredline/core/series"
	"github.com/fredline/fredline/schema"
)

// Point pairs an observation's position in its series with the parsed numeric
// value. Index refers to the original observation sequence so interaction glue
// can recover the date and raw value string.
type Point struct {
	Index int
	Value float64
}

// Model holds the active ordered set of series and, per series, the filtered
// sequence of numeric points. Observations whose values do not parse as finite
// numbers are skipped silently; sentinel strings for missing data are expected,
// frequent input, not an error.
type Model struct {
	active   []*series.Series
	points   [][]Point
	minValue float64
	maxValue float64
	numeric  bool
}

// NewModel returns a Model with no active series.
func NewModel() *Model {
	return &Model{}
}

// SetSeries replaces the active series set and recomputes the filtered points
// and the global value range in one pass per series. Output order equals input
// order; colors and legend positions follow the caller's ordering, not series
// identity. Anything beyond the active-series cap is dropped.
func (m *Model) SetSeries(list []*series.Series) {
	if len(list) > schema.MaxActiveSeries {
		list = list[:schema.MaxActiveSeries]
	}

	m.active = list
	m.points = make([][]Point, len(list))
	m.minValue = 0
	m.maxValue = 0
	m.numeric = false

	for i, s := range list {
		count := s.ObservationCount()
		pts := make([]Point, 0, count)
		for j := 0; j < count; j++ {
			v, err := strconv.ParseFloat(s.Observation(j).Value, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !m.numeric || v < m.minValue {
				m.minValue = v
			}
			if !m.numeric || v > m.maxValue {
				m.maxValue = v
			}
			m.numeric = true
			pts = append(pts, Point{Index: j, Value: v})
		}
		m.points[i] = pts
	}
}

// SeriesCount returns the number of active series.
func (m *Model) SeriesCount() int { return len(m.active) }

// Series returns the active series at position i.
func (m *Model) Series(i int) *series.Series { return m.active[i] }

// Points returns the filtered numeric points for the series at position i.
// The slice is owned by the model and must not be modified.
func (m *Model) Points(i int) []Point { return m.points[i] }

// Range returns the min and max over all numeric points. ok is false when the
// model is empty, which is distinct from "has series but all non-numeric"
// only in that both report ok == false: either way there is nothing to scale.
func (m *Model) Range() (minValue, maxValue float64, ok bool) {
	return m.minValue, m.maxValue, m.numeric
}

// Empty reports whether no numeric points exist across all active series.
func (m *Model) Empty() bool { return !m.numeric }

// ColorIndex returns the palette slot for the series at position i. Assignment
// is deterministic by position and cycles through the fixed palette, so a
// series in the same position always gets the same color.
func (m *Model) ColorIndex(i int) int {
	return i % len(schema.ChartPalette)
}

// Color returns the palette entry for the series at position i.
func (m *Model) Color(i int) schema.ChartColor {
	return schema.ChartPalette[m.ColorIndex(i)]
}

// Label returns the legend label for the series at position i.
func (m *Model) Label(i int) string {
	return m.active[i].ID()
}
