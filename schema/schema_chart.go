package schema

// DevicePoint is a pixel-space position produced by projecting a data point
// through the current viewport mapping.
type DevicePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeriesRender is the drawable output for one series: device coordinates
// aligned index-for-index with the series' filtered numeric observations.
type ChartSeriesRender struct {
	SeriesID   string        `json:"seriesId"`
	Title      string        `json:"title"`
	ColorIndex int           `json:"colorIndex"`
	Points     []DevicePoint `json:"points"`
	Dates      []string      `json:"dates"`  // aligned with Points
	Values     []string      `json:"values"` // raw observation strings, aligned with Points
}

// ChartRender carries everything a renderer needs to draw axes, gridlines,
// lines and a legend without reaching back into the model.
type ChartRender struct {
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Margin     int                 `json:"margin"`
	MinValue   float64             `json:"minValue"`
	MaxValue   float64             `json:"maxValue"`
	Degenerate bool                `json:"degenerate"` // min == max substitution applied
	Empty      bool                `json:"empty"`      // no numeric points across all series
	Series     []ChartSeriesRender `json:"series"`
}

// NearestHit is the result of a pointer probe against the projected chart.
type NearestHit struct {
	SeriesID    string      `json:"seriesId"`
	SeriesIndex int         `json:"seriesIndex"`
	PointIndex  int         `json:"pointIndex"`
	Date        string      `json:"date"`
	Value       string      `json:"value"`
	Position    DevicePoint `json:"position"`
	Distance    float64     `json:"distance"`
}
