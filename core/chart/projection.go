package chart

import (
	"math"

	"github.com/fredline/fredline/schema"
)

// degenerateSpan is the half-range substituted when every numeric point shares
// one value, so the shared value maps to mid-scale instead of dividing by a
// zero range.
const degenerateSpan = 1.0

// Projection maps a Model's points into device space for a given viewport and
// caches the resulting screen points so nearest-point queries do not recompute
// per pointer move. Project replaces the cache in full; after any model or
// viewport change the caller must call Project again before FindNearest.
type Projection struct {
	model      *Model
	width      int
	height     int
	margin     int
	lo, hi     float64
	degenerate bool
	device     [][]schema.DevicePoint
	projected  bool
}

// NewProjection returns a Projection with no cached points.
func NewProjection() *Projection {
	return &Projection{}
}

// Project computes device coordinates for every numeric point in the model.
//
// x is linear in the point's ordinal position across [0, n-1] mapped to
// [margin, width-margin]; a single-point series centers its point in the
// drawable span. y is linear in value across the (possibly substituted) range
// mapped to [height-margin, margin], so larger values sit higher on screen.
// A near-zero drawable area still projects; detecting an unusable viewport is
// the renderer's concern.
func (p *Projection) Project(m *Model, width, height, margin int) {
	p.model = m
	p.width = width
	p.height = height
	p.margin = margin
	p.device = make([][]schema.DevicePoint, m.SeriesCount())
	p.projected = true

	lo, hi, ok := m.Range()
	if !ok {
		for i := range p.device {
			p.device[i] = nil
		}
		p.lo, p.hi, p.degenerate = 0, 0, false
		return
	}
	p.degenerate = hi == lo
	if p.degenerate {
		lo, hi = lo-degenerateSpan, hi+degenerateSpan
	}
	p.lo, p.hi = lo, hi

	plotW := float64(width - 2*margin)
	plotH := float64(height - 2*margin)

	for i := 0; i < m.SeriesCount(); i++ {
		pts := m.Points(i)
		device := make([]schema.DevicePoint, len(pts))
		for j, pt := range pts {
			var x float64
			if len(pts) > 1 {
				x = float64(margin) + plotW*float64(j)/float64(len(pts)-1)
			} else {
				x = float64(margin) + plotW/2
			}
			y := float64(height-margin) - plotH*(pt.Value-lo)/(hi-lo)
			device[j] = schema.DevicePoint{X: x, Y: y}
		}
		p.device[i] = device
	}
}

// SeriesPoints returns the cached device points for the series at position i,
// aligned index-for-index with the model's filtered numeric points.
func (p *Projection) SeriesPoints(i int) []schema.DevicePoint {
	return p.device[i]
}

// Render snapshots everything a renderer needs: per-series device sequences
// with their dates and raw values, the resolved value range, and the
// degenerate-range flag.
func (p *Projection) Render() schema.ChartRender {
	out := schema.ChartRender{
		Width:      p.width,
		Height:     p.height,
		Margin:     p.margin,
		Degenerate: p.degenerate,
		Empty:      true,
	}
	if !p.projected || p.model == nil {
		return out
	}

	minValue, maxValue, ok := p.model.Range()
	out.MinValue, out.MaxValue = minValue, maxValue
	out.Empty = !ok

	for i := 0; i < p.model.SeriesCount(); i++ {
		s := p.model.Series(i)
		pts := p.model.Points(i)
		render := schema.ChartSeriesRender{
			SeriesID:   s.ID(),
			Title:      s.Title(),
			ColorIndex: p.model.ColorIndex(i),
			Points:     append([]schema.DevicePoint(nil), p.device[i]...),
			Dates:      make([]string, len(pts)),
			Values:     make([]string, len(pts)),
		}
		for j, pt := range pts {
			obs := s.Observation(pt.Index)
			render.Dates[j] = obs.Date
			render.Values[j] = obs.Value
		}
		out.Series = append(out.Series, render)
	}
	return out
}

// FindNearest scans all cached device points and returns the one closest to
// the pointer, but only when that minimum distance is strictly less than
// threshold. Ties resolve to the earlier series and then the earlier point in
// iteration order. ok is false when nothing is within threshold or no points
// are projected.
func (p *Projection) FindNearest(x, y, threshold float64) (schema.NearestHit, bool) {
	var hit schema.NearestHit
	if !p.projected || p.model == nil {
		return hit, false
	}

	best := threshold
	found := false
	for s := range p.device {
		for j, dp := range p.device[s] {
			d := math.Hypot(dp.X-x, dp.Y-y)
			if d < best {
				best = d
				found = true
				obs := p.model.Series(s).Observation(p.model.Points(s)[j].Index)
				hit = schema.NearestHit{
					SeriesID:    p.model.Series(s).ID(),
					SeriesIndex: s,
					PointIndex:  j,
					Date:        obs.Date,
					Value:       obs.Value,
					Position:    dp,
					Distance:    d,
				}
			}
		}
	}
	return hit, found
}
