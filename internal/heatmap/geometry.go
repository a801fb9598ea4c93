package heatmap

import (
	"fmt"
	"math"
	"strconv"
)

// Padding is the space reserved around the cell grid, in pixels.
type Padding struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Layout holds the fixed pixel budget of the chart.
type Layout struct {
	Padding            Padding `json:"padding"`
	CellWidth          float64 `json:"cellWidth"`
	CellHeight         float64 `json:"cellHeight"`
	LegendSwatchWidth  float64 `json:"legendSwatchWidth"`
	LegendSwatchHeight float64 `json:"legendSwatchHeight"`
	// LegendGap is the distance between the bottom of the grid and the legend.
	LegendGap     float64 `json:"legendGap"`
	YearTickCount int     `json:"yearTickCount"`
}

// DefaultLayout is the stock chart geometry.
var DefaultLayout = Layout{
	Padding:            Padding{Left: 140, Right: 50, Top: 15, Bottom: 150},
	CellWidth:          5,
	CellHeight:         33,
	LegendSwatchWidth:  40,
	LegendSwatchHeight: 20,
	LegendGap:          60,
	YearTickCount:      30,
}

// Validate reports layouts that cannot yield finite, non-degenerate geometry.
func (l Layout) Validate() error {
	for name, v := range map[string]float64{
		"padding.left":   l.Padding.Left,
		"padding.right":  l.Padding.Right,
		"padding.top":    l.Padding.Top,
		"padding.bottom": l.Padding.Bottom,
		"legend gap":     l.LegendGap,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: layout %s is not finite", ErrInvalidDomain, name)
		}
	}
	for name, v := range map[string]float64{
		"cell width":           l.CellWidth,
		"cell height":          l.CellHeight,
		"legend swatch width":  l.LegendSwatchWidth,
		"legend swatch height": l.LegendSwatchHeight,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: layout %s must be positive and finite, got %v", ErrInvalidDomain, name, v)
		}
	}
	if l.YearTickCount < 0 {
		return fmt.Errorf("%w: negative year tick count %d", ErrInvalidDomain, l.YearTickCount)
	}
	return nil
}

// YearToX maps a year onto the horizontal axis: [minYear, maxYear] goes to
// [Left, Left + CellWidth*(maxYear-minYear)]. A single-year domain collapses
// to Left.
func YearToX(year, minYear, maxYear int, l Layout) float64 {
	if maxYear == minYear {
		return l.Padding.Left
	}
	// The range is CellWidth pixels per year of domain, so the scale reduces
	// to an offset and stays exact for integer inputs.
	return l.Padding.Left + l.CellWidth*float64(year-minYear)
}

// MonthToY returns the top edge of a month's row; January is the first row.
func MonthToY(month int, l Layout) float64 {
	return l.Padding.Top + l.CellHeight*float64(month-1)
}

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// YearTick is one labelled tick of the bottom axis.
type YearTick struct {
	Year  int     `json:"year"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// MonthTick is one row label of the left axis, centred on its row.
type MonthTick struct {
	Month int     `json:"month"`
	Name  string  `json:"name"`
	Y     float64 `json:"y"`
}

// LegendLabel is a boundary value printed between two swatches.
type LegendLabel struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// LegendEntry is one swatch of the color legend.
type LegendEntry struct {
	Index   int         `json:"index"`
	Bucket  ColorBucket `json:"bucket"`
	SwatchX float64     `json:"swatchX"`
	SwatchY float64     `json:"swatchY"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	// Label is nil for the first swatch, whose lower bound is unbounded.
	Label *LegendLabel `json:"label,omitempty"`
}

// Planner computes pixel geometry for one year domain and layout.
type Planner struct {
	minYear int
	maxYear int
	layout  Layout
}

// NewPlanner returns a planner for the inclusive domain [minYear, maxYear].
func NewPlanner(minYear, maxYear int, l Layout) (Planner, error) {
	if maxYear < minYear {
		return Planner{}, fmt.Errorf("%w: max year %d is before min year %d", ErrInvalidDomain, maxYear, minYear)
	}
	if err := l.Validate(); err != nil {
		return Planner{}, err
	}
	return Planner{minYear: minYear, maxYear: maxYear, layout: l}, nil
}

// Domain returns the planner's year bounds.
func (p Planner) Domain() (minYear, maxYear int) {
	return p.minYear, p.maxYear
}

// CellPosition returns the top-left corner of the cell for (year, month). It
// depends only on those values, never on where the record sat in the input.
func (p Planner) CellPosition(year, month int) Point {
	return Point{
		X: YearToX(year, p.minYear, p.maxYear, p.layout),
		Y: MonthToY(month, p.layout),
	}
}

// GridBottom is the y coordinate just below the December row.
func (p Planner) GridBottom() float64 {
	return MonthToY(13, p.layout)
}

// GridRight is the x coordinate just right of the last year's column.
func (p Planner) GridRight() float64 {
	return YearToX(p.maxYear, p.minYear, p.maxYear, p.layout) + p.layout.CellWidth
}

// Plot is the rectangle covered by the cell grid.
func (p Planner) Plot() Rect {
	return Rect{
		X:      p.layout.Padding.Left,
		Y:      p.layout.Padding.Top,
		Width:  p.GridRight() - p.layout.Padding.Left,
		Height: p.GridBottom() - p.layout.Padding.Top,
	}
}

// Width is the full canvas width, wide enough for the grid and a legend of
// the given number of swatches.
func (p Planner) Width(swatches int) float64 {
	right := p.GridRight()
	if lr := p.layout.Padding.Left + p.layout.LegendSwatchWidth*float64(swatches); lr > right {
		right = lr
	}
	return right + p.layout.Padding.Right
}

// Height is the full canvas height.
func (p Planner) Height() float64 {
	return p.GridBottom() + p.layout.Padding.Bottom
}

// YearTicks samples "nice" tick values over the year domain, targeting the
// layout's tick count, and reduces them to distinct integer years.
func (p Planner) YearTicks() []YearTick {
	values := niceTicks(float64(p.minYear), float64(p.maxYear), p.layout.YearTickCount)

	ticks := make([]YearTick, 0, len(values))
	last := math.MinInt
	for _, v := range values {
		year := int(math.Round(v))
		if year < p.minYear || year > p.maxYear || year == last {
			continue
		}
		last = year
		ticks = append(ticks, YearTick{
			Year:  year,
			X:     YearToX(year, p.minYear, p.maxYear, p.layout),
			Label: strconv.Itoa(year),
		})
	}
	return ticks
}

// MonthTicks returns the 12 row labels of the left axis.
func (p Planner) MonthTicks() []MonthTick {
	return monthTicks(p.layout)
}

func monthTicks(l Layout) []MonthTick {
	ticks := make([]MonthTick, 0, len(MonthNames))
	for i, name := range MonthNames {
		ticks = append(ticks, MonthTick{
			Month: i + 1,
			Name:  name,
			Y:     MonthToY(i+1, l) + l.CellHeight/2,
		})
	}
	return ticks
}

// Legend lays out one swatch per bucket, left to right, below the grid.
// Entry i > 0 carries the boundary label buckets[i].Min at its left edge, so
// the unbounded ends of the scale are never labelled.
func (p Planner) Legend(buckets []ColorBucket) []LegendEntry {
	return legend(buckets, p.layout, p.GridBottom()+p.layout.LegendGap)
}

func legend(buckets []ColorBucket, l Layout, y float64) []LegendEntry {
	entries := make([]LegendEntry, 0, len(buckets))
	for i, b := range buckets {
		x := l.Padding.Left + l.LegendSwatchWidth*float64(i)
		e := LegendEntry{
			Index:   i,
			Bucket:  b,
			SwatchX: x,
			SwatchY: y,
			Width:   l.LegendSwatchWidth,
			Height:  l.LegendSwatchHeight,
		}
		if i > 0 && !math.IsInf(b.Min, 0) {
			e.Label = &LegendLabel{
				X:     x,
				Value: b.Min,
				Text:  strconv.FormatFloat(b.Min, 'f', -1, 64),
			}
		}
		entries = append(entries, e)
	}
	return entries
}
