package outwriter

import (
	"fmt"
	"io"

	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
)

// PrintSVGChart writes the rendered chart as an SVG document to the path in
// cfg.SVGFile.
func PrintSVGChart(render schema.ChartRender, cfg *contract.Config) error {
	return writeWithFile(cfg.SVGFile, func(w io.Writer) error {
		return WriteSVG(w, render, cfg.Precision)
	}, "Wrote SVG chart")
}

// WriteSVG serializes a rendered chart as an SVG document: dark background,
// labeled horizontal gridlines, one polyline per series in its palette color,
// and a legend block in the top-left corner.
func WriteSVG(w io.Writer, render schema.ChartRender, precision int) error {
	width, height, margin := render.Width, render.Height, render.Margin
	fmtFloat := createFloatFormatter(precision)

	if _, err := fmt.Fprintf(w, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>\n", width, height, width, height); err != nil {
		return err
	}
	fmt.Fprintln(w, "<rect width='100%' height='100%' fill='#ffffff'/>")

	if render.Empty || !hasPoints(render) {
		fmt.Fprintf(w, "<text x='%d' y='%d' fill='#666666' font-family='sans-serif' font-size='14' text-anchor='middle'>No plottable data</text>\n", width/2, height/2)
		_, err := fmt.Fprintln(w, "</svg>")
		return err
	}

	// Gridlines with value labels
	plotH := height - 2*margin
	for g := 0; g < gridlineCount; g++ {
		y := margin + plotH*g/(gridlineCount-1)
		value := render.MaxValue - (render.MaxValue-render.MinValue)*float64(g)/float64(gridlineCount-1)
		fmt.Fprintf(w, "<line x1='%d' y1='%d' x2='%d' y2='%d' stroke='#dddddd'/>\n", margin, y, width-margin, y)
		fmt.Fprintf(w, "<text x='%d' y='%d' fill='#666666' font-family='sans-serif' font-size='11' text-anchor='end'>%s</text>\n", margin-6, y+4, fmtFloat(value))
	}

	// Series polylines with point markers
	for _, s := range render.Series {
		if len(s.Points) == 0 {
			continue
		}
		hex := schema.ChartPalette[s.ColorIndex%len(schema.ChartPalette)].Hex

		if len(s.Points) > 1 {
			fmt.Fprintf(w, "<polyline fill='none' stroke='%s' stroke-width='2' points='", hex)
			for i, p := range s.Points {
				if i > 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprintf(w, "%.2f,%.2f", p.X, p.Y)
			}
			fmt.Fprintln(w, "'/>")
		}

		for _, p := range s.Points {
			fmt.Fprintf(w, "<circle cx='%.2f' cy='%.2f' r='3' fill='%s'/>\n", p.X, p.Y, hex)
		}
	}

	// Legend
	for i, s := range render.Series {
		hex := schema.ChartPalette[s.ColorIndex%len(schema.ChartPalette)].Hex
		y := margin + 16 + i*18
		label := s.SeriesID
		if s.Title != "" && s.Title != s.SeriesID {
			label = fmt.Sprintf("%s: %s", s.SeriesID, contract.TruncateLabel(s.Title, 48))
		}
		fmt.Fprintf(w, "<rect x='%d' y='%d' width='12' height='12' fill='%s'/>\n", margin+8, y-10, hex)
		fmt.Fprintf(w, "<text x='%d' y='%d' fill='#333333' font-family='sans-serif' font-size='12'>%s</text>\n", margin+26, y, label)
	}

	_, err := fmt.Fprintln(w, "</svg>")
	return err
}
