package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

var (
	background = color.White
	ink        = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Raster draws the chart onto an RGBA image sized to the model's canvas.
func Raster(m heatmap.ChartModel) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(m.Width)), int(math.Ceil(m.Height))))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, c := range m.Cells {
		fillRect(img, c.X, c.Y, c.Width, c.Height, c.Color.NRGBA())
	}

	p := m.Plot
	bottom := p.Y + p.Height
	fillRect(img, p.X-1, p.Y, 1, p.Height, ink)
	if p.Width > 0 {
		fillRect(img, p.X, bottom, p.Width, 1, ink)
	}

	for _, t := range m.MonthTicks {
		fillRect(img, p.X-tickLength, t.Y, tickLength, 1, ink)
		drawText(img, t.Name, p.X-tickLength-3, t.Y+4, anchorEnd)
	}
	for _, t := range m.YearTicks {
		fillRect(img, t.X, bottom, 1, tickLength, ink)
		drawText(img, t.Label, t.X, bottom+tickLength+12, anchorMiddle)
	}

	for _, e := range m.Legend {
		fillRect(img, e.SwatchX, e.SwatchY, e.Width, e.Height, e.Bucket.Color.NRGBA())
		if e.Label != nil {
			drawText(img, e.Label.Text, e.Label.X, e.SwatchY+e.Height+14, anchorMiddle)
		}
	}

	drawText(img, m.Title, m.Width/2, m.Height-30, anchorMiddle)
	drawText(img, m.Description, m.Width/2, m.Height-12, anchorMiddle)
	return img
}

// PNG writes the rasterised chart as a PNG image.
func PNG(w io.Writer, m heatmap.ChartModel) error {
	return png.Encode(w, Raster(m))
}

func fillRect(img draw.Image, x, y, w, h float64, c color.Color) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText draws s with its baseline at y. basicfont only covers ASCII, so
// the degree sign is dropped.
func drawText(img draw.Image, s string, x, y float64, a anchor) {
	s = strings.ReplaceAll(s, "°", "")
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(ink), Face: face}

	width := dr.MeasureString(s).Round()
	px := int(math.Round(x))
	switch a {
	case anchorMiddle:
		px -= width / 2
	case anchorEnd:
		px -= width
	}

	dr.Dot = fixed.Point26_6{X: fixed.I(px), Y: fixed.I(int(math.Round(y)))}
	dr.DrawString(s)
}
