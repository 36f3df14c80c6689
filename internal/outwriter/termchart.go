package outwriter

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
)

// gridlineCount is the number of horizontal gridlines drawn across the plot.
const gridlineCount = 5

// terminalColors maps palette positions to terminal colors. The order mirrors
// schema.ChartPalette.
var terminalColors = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
}

// markerRunes distinguishes series when colors are disabled.
var markerRunes = []rune{'*', '+', 'x', 'o', '#'}

// cell is one character of the chart grid, tagged with the series that drew it
// so color can be applied per cell. A series index of -1 means chrome.
type cell struct {
	ch     rune
	series int
}

// PrintChart renders a chart to stdout as character art.
func PrintChart(render schema.ChartRender, cfg *contract.Config) error {
	fmt.Print(RenderTerminalChart(render, cfg.UseColors, cfg.Precision))
	return nil
}

// RenderTerminalChart plots the device coordinates of a rendered chart onto a
// rune grid sized render.Width by render.Height. Series lines overdraw
// gridlines, and later series overdraw earlier ones.
func RenderTerminalChart(render schema.ChartRender, useColors bool, precision int) string {
	if render.Empty || !hasPoints(render) {
		return "No plottable data.\n"
	}

	w, h, m := render.Width, render.Height, render.Margin
	if w-2*m < 2 || h-2*m < 1 {
		return "Viewport too small to draw a chart.\n"
	}

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' ', series: -1}
		}
	}

	labels := drawGridlines(grid, render, precision)
	for i, s := range render.Series {
		drawSeries(grid, s, i, w, h)
	}

	gutter := 0
	for _, label := range labels {
		if len(label) > gutter {
			gutter = len(label)
		}
	}

	var sb strings.Builder
	for y := 0; y < h; y++ {
		fmt.Fprintf(&sb, "%*s ", gutter, labels[y])
		line := renderRow(grid[y], useColors)
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}

	writeLegend(&sb, render, useColors)
	return sb.String()
}

// hasPoints reports whether any series carries at least one device point.
func hasPoints(render schema.ChartRender) bool {
	for _, s := range render.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// drawGridlines paints evenly spaced horizontal gridlines across the plot
// area and returns the per-row value labels for the left gutter.
func drawGridlines(grid [][]cell, render schema.ChartRender, precision int) []string {
	w, h, m := render.Width, render.Height, render.Margin
	plotH := h - 2*m
	fmtFloat := createFloatFormatter(precision)

	labels := make([]string, h)
	for g := 0; g < gridlineCount; g++ {
		y := m + plotH*g/(gridlineCount-1)
		if y < 0 || y >= h {
			continue
		}
		for x := m; x <= w-m && x < w; x++ {
			grid[y][x] = cell{ch: '.', series: -1}
		}

		value := render.MaxValue - (render.MaxValue-render.MinValue)*float64(g)/float64(gridlineCount-1)
		labels[y] = fmtFloat(value)
	}
	return labels
}

// drawSeries plots one series: markers at each observation connected by
// line segments.
func drawSeries(grid [][]cell, s schema.ChartSeriesRender, seriesIdx, w, h int) {
	marker := markerRunes[s.ColorIndex%len(markerRunes)]

	var prevX, prevY int
	for j, p := range s.Points {
		x := clamp(int(math.Round(p.X)), 0, w-1)
		y := clamp(int(math.Round(p.Y)), 0, h-1)
		if j > 0 {
			drawSegment(grid, prevX, prevY, x, y, marker, seriesIdx)
		}
		grid[y][x] = cell{ch: marker, series: seriesIdx}
		prevX, prevY = x, y
	}
}

// drawSegment draws a straight line between two grid cells using Bresenham
// stepping. Endpoints are drawn by the caller.
func drawSegment(grid [][]cell, x0, y0, x1, y1 int, marker rune, seriesIdx int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		grid[y][x] = cell{ch: marker, series: seriesIdx}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// renderRow converts one grid row to a string, colorizing series cells.
func renderRow(row []cell, useColors bool) string {
	var sb strings.Builder
	for _, c := range row {
		if useColors && c.series >= 0 {
			colorIdx := c.series % len(terminalColors)
			sb.WriteString(terminalColors[colorIdx].Sprint(string(c.ch)))
		} else {
			sb.WriteRune(c.ch)
		}
	}
	return sb.String()
}

// writeLegend appends one legend line per series below the chart.
func writeLegend(sb *strings.Builder, render schema.ChartRender, useColors bool) {
	for _, s := range render.Series {
		marker := string(markerRunes[s.ColorIndex%len(markerRunes)])
		name := schema.ChartPalette[s.ColorIndex%len(schema.ChartPalette)].Name
		if useColors {
			marker = terminalColors[s.ColorIndex%len(terminalColors)].Sprint(marker)
		}
		label := s.SeriesID
		if s.Title != "" && s.Title != s.SeriesID {
			label = fmt.Sprintf("%s (%s)", s.SeriesID, contract.TruncateLabel(s.Title, 40))
		}
		fmt.Fprintf(sb, "%s %s [%s]\n", marker, label, name)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
