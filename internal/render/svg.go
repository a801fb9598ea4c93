package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

const (
	fontFamily    = "sans-serif"
	axisColor     = "#333"
	tickLength    = 6
	labelFontSize = 11
)

// SVG writes the chart as a standalone SVG document. Each cell carries its
// year, month and temperature as data attributes plus a native tooltip.
func SVG(w io.Writer, m heatmap.ChartModel) error {
	var svg strings.Builder

	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(m.Width), num(m.Height), num(m.Width), num(m.Height))
	svg.WriteString("\n")
	fmt.Fprintf(&svg, "<title>%s</title>\n<desc>%s</desc>\n", esc(m.Title), esc(m.Description))
	fmt.Fprintf(&svg, `<rect width="100%%" height="100%%" fill="#fff"/>`+"\n")

	writeCells(&svg, m)
	writeAxes(&svg, m)
	writeLegend(&svg, m)
	writeHeading(&svg, m)

	svg.WriteString("</svg>\n")

	_, err := io.WriteString(w, svg.String())
	return err
}

func writeCells(svg *strings.Builder, m heatmap.ChartModel) {
	svg.WriteString(`<g class="cells">` + "\n")
	for _, c := range m.Cells {
		tip := c.Tooltip()
		fmt.Fprintf(svg, `<rect class="cell" x="%s" y="%s" width="%s" height="%s" fill="%s" data-year="%d" data-month="%d" data-temp="%s" data-variance="%s"><title>%s&#10;%s&#10;%s</title></rect>`,
			num(c.X), num(c.Y), num(c.Width), num(c.Height), c.Color.String(),
			c.Year, c.Month, num(c.Temperature), num(c.Variance),
			esc(tip.Heading), esc(tip.Temperature), esc(tip.Variance))
		svg.WriteString("\n")
	}
	svg.WriteString("</g>\n")
}

func writeAxes(svg *strings.Builder, m heatmap.ChartModel) {
	p := m.Plot
	bottom := p.Y + p.Height

	svg.WriteString(`<g class="y-axis">` + "\n")
	fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(p.X), num(p.Y), num(p.X), num(bottom), axisColor)
	for _, t := range m.MonthTicks {
		fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(p.X-tickLength), num(t.Y), num(p.X), num(t.Y), axisColor)
		fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="end" dominant-baseline="middle" font-family="%s" font-size="%d">%s</text>`+"\n",
			num(p.X-tickLength-3), num(t.Y), fontFamily, labelFontSize, esc(t.Name))
	}
	fmt.Fprintf(svg, `<text transform="translate(%s,%s) rotate(-90)" text-anchor="middle" font-family="%s" font-size="%d">Months</text>`+"\n",
		num(p.X-90), num(p.Y+p.Height/2), fontFamily, labelFontSize+2)
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="x-axis">` + "\n")
	fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(p.X), num(bottom), num(p.X+p.Width), num(bottom), axisColor)
	for _, t := range m.YearTicks {
		fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(t.X), num(bottom), num(t.X), num(bottom+tickLength), axisColor)
		fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d">%s</text>`+"\n",
			num(t.X), num(bottom+tickLength+12), fontFamily, labelFontSize, esc(t.Label))
	}
	if len(m.Cells) > 0 {
		fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d">Years</text>`+"\n",
			num(p.X+p.Width/2), num(bottom+40), fontFamily, labelFontSize+2)
	}
	svg.WriteString("</g>\n")
}

func writeLegend(svg *strings.Builder, m heatmap.ChartModel) {
	svg.WriteString(`<g class="legend">` + "\n")
	for _, e := range m.Legend {
		fmt.Fprintf(svg, `<rect class="swatch" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s"/>`+"\n",
			num(e.SwatchX), num(e.SwatchY), num(e.Width), num(e.Height), e.Bucket.Color.String(), axisColor)
		if e.Label == nil {
			continue
		}
		fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d">%s</text>`+"\n",
			num(e.Label.X), num(e.SwatchY+e.Height+14), fontFamily, labelFontSize, esc(e.Label.Text))
	}
	svg.WriteString("</g>\n")
}

func writeHeading(svg *strings.Builder, m heatmap.ChartModel) {
	y := m.Height - 30
	fmt.Fprintf(svg, `<text id="title" x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="16" font-weight="bold">%s</text>`+"\n",
		num(m.Width/2), num(y), fontFamily, esc(m.Title))
	fmt.Fprintf(svg, `<text id="description" x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d">%s</text>`+"\n",
		num(m.Width/2), num(y+18), fontFamily, labelFontSize+1, esc(m.Description))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func esc(s string) string {
	return html.EscapeString(s)
}
