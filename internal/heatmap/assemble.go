package heatmap

import (
	"fmt"
	"strconv"
)

// Title is the chart heading.
const Title = "Monthly Global Land-Surface Temperature"

// ChartModel is everything a renderer needs to draw the heat-map.
type ChartModel struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	BaseTemperature float64       `json:"baseTemperature"`
	MinYear         int           `json:"minYear"`
	MaxYear         int           `json:"maxYear"`
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	Plot            Rect          `json:"plot"`
	Cells           []RenderCell  `json:"cells"`
	YearTicks       []YearTick    `json:"yearTicks"`
	MonthLabels     []string      `json:"monthLabels"`
	MonthTicks      []MonthTick   `json:"monthTicks"`
	Legend          []LegendEntry `json:"legend"`
	Stats           Stats         `json:"stats"`

	index map[cellKey]int
}

type cellKey struct {
	year, month int
}

// CellAt returns the cell for (year, month), the key the rendering layer uses
// for hover lookups.
func (m *ChartModel) CellAt(year, month int) (RenderCell, bool) {
	if m.index != nil {
		i, ok := m.index[cellKey{year, month}]
		if !ok {
			return RenderCell{}, false
		}
		return m.Cells[i], true
	}
	// Models decoded from JSON carry no index.
	for _, c := range m.Cells {
		if c.Year == year && c.Month == month {
			return c, true
		}
	}
	return RenderCell{}, false
}

// Assembler turns a dataset into a ChartModel. It holds no per-call state and
// is safe for concurrent use.
type Assembler struct {
	Layout Layout
	Scale  *ColorScale
}

// NewAssembler returns an assembler using DefaultLayout and DefaultScale.
func NewAssembler() *Assembler {
	return &Assembler{Layout: DefaultLayout, Scale: DefaultScale}
}

// Assemble builds a chart with the default layout and color scale.
func Assemble(ds Dataset) (ChartModel, error) {
	return NewAssembler().Assemble(ds)
}

// Assemble groups the records, places one cell per month and colors it. An
// empty dataset yields a model with no cells and no year ticks.
func (a *Assembler) Assemble(ds Dataset) (ChartModel, error) {
	if err := a.Layout.Validate(); err != nil {
		return ChartModel{}, err
	}
	scale := a.Scale
	if scale == nil {
		scale = DefaultScale
	}
	buckets := scale.Buckets()

	model := ChartModel{
		Title:           Title,
		BaseTemperature: ds.BaseTemperature,
		Cells:           []RenderCell{},
		YearTicks:       []YearTick{},
		MonthLabels:     append([]string(nil), MonthNames[:]...),
		MonthTicks:      monthTicks(a.Layout),
	}

	groups, err := GroupByYear(ds.MonthlyVariance, ds.BaseTemperature)
	if err != nil {
		return ChartModel{}, fmt.Errorf("group records: %w", err)
	}

	minYear, maxYear, ok := YearRange(groups)
	if !ok {
		gridBottom := MonthToY(13, a.Layout)
		model.Description = "base temperature " + formatFloat(ds.BaseTemperature) + "°C"
		model.Legend = legend(buckets, a.Layout, gridBottom+a.Layout.LegendGap)
		model.Width = a.Layout.Padding.Left + a.Layout.LegendSwatchWidth*float64(len(buckets)) + a.Layout.Padding.Right
		model.Height = gridBottom + a.Layout.Padding.Bottom
		model.Plot = Rect{X: a.Layout.Padding.Left, Y: a.Layout.Padding.Top, Height: gridBottom - a.Layout.Padding.Top}
		return model, nil
	}

	planner, err := NewPlanner(minYear, maxYear, a.Layout)
	if err != nil {
		return ChartModel{}, err
	}

	model.MinYear, model.MaxYear = minYear, maxYear
	model.Description = strconv.Itoa(minYear) + " - " + strconv.Itoa(maxYear) +
		": base temperature " + formatFloat(ds.BaseTemperature) + "°C"
	model.Width = planner.Width(len(buckets))
	model.Height = planner.Height()
	model.Plot = planner.Plot()
	model.YearTicks = planner.YearTicks()
	model.Legend = planner.Legend(buckets)
	model.Stats = ComputeStats(groups)
	model.index = make(map[cellKey]int, len(ds.MonthlyVariance))

	for _, g := range groups {
		for _, m := range g.MonthlyData {
			bucket, err := scale.BucketIndex(m.Temperature)
			if err != nil {
				return ChartModel{}, fmt.Errorf("color year %d month %d: %w", g.Year, m.Month, err)
			}
			pos := planner.CellPosition(g.Year, m.Month)

			model.index[cellKey{g.Year, m.Month}] = len(model.Cells)
			model.Cells = append(model.Cells, RenderCell{
				Year:        g.Year,
				Month:       m.Month,
				X:           pos.X,
				Y:           pos.Y,
				Width:       a.Layout.CellWidth,
				Height:      a.Layout.CellHeight,
				Color:       buckets[bucket].Color,
				Bucket:      bucket,
				Temperature: m.Temperature,
				Variance:    m.Variance,
			})
		}
	}

	return model, nil
}
