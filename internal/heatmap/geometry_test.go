package heatmap

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestYearToX(t *testing.T) {
	l := DefaultLayout
	if got := YearToX(1753, 1753, 2015, l); got != 140 {
		t.Errorf("min year: expected 140, got %v", got)
	}
	if got := YearToX(2015, 1753, 2015, l); got != 140+5*262 {
		t.Errorf("max year: expected %v, got %v", 140+5*262, got)
	}
	if got := YearToX(1760, 1753, 2015, l); got != 175 {
		t.Errorf("1760: expected 175, got %v", got)
	}
}

func TestSingleYearDomain(t *testing.T) {
	p, err := NewPlanner(1753, 1753, DefaultLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for month := 1; month <= 12; month++ {
		pos := p.CellPosition(1753, month)
		if pos.X != DefaultLayout.Padding.Left {
			t.Fatalf("month %d: expected x=%v, got %v", month, DefaultLayout.Padding.Left, pos.X)
		}
		if math.IsNaN(pos.X) || math.IsInf(pos.X, 0) {
			t.Fatalf("month %d: non-finite x %v", month, pos.X)
		}
	}

	ticks := p.YearTicks()
	if len(ticks) != 1 || ticks[0].Year != 1753 || ticks[0].X != 140 {
		t.Fatalf("expected a single 1753 tick at 140, got %+v", ticks)
	}
}

func TestNewPlannerInvalidDomain(t *testing.T) {
	if _, err := NewPlanner(2015, 1753, DefaultLayout); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("expected ErrInvalidDomain, got %v", err)
	}

	bad := DefaultLayout
	bad.CellWidth = 0
	if _, err := NewPlanner(1753, 2015, bad); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("expected ErrInvalidDomain for zero cell width, got %v", err)
	}

	bad = DefaultLayout
	bad.Padding.Top = math.NaN()
	if _, err := NewPlanner(1753, 2015, bad); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("expected ErrInvalidDomain for NaN padding, got %v", err)
	}
}

func TestCellPosition(t *testing.T) {
	p, err := NewPlanner(1753, 2015, DefaultLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		year, month int
		x, y        float64
	}{
		{1753, 1, 140, 15},
		{1753, 12, 140, 15 + 33*11},
		{1754, 1, 145, 15},
		{2015, 6, 140 + 5*262, 15 + 33*5},
	}
	for _, tt := range tests {
		pos := p.CellPosition(tt.year, tt.month)
		if pos.X != tt.x || pos.Y != tt.y {
			t.Errorf("CellPosition(%d, %d) = %+v, expected (%v, %v)", tt.year, tt.month, pos, tt.x, tt.y)
		}
	}

	if got := p.GridBottom(); got != 15+33*12 {
		t.Errorf("GridBottom = %v, expected %v", got, 15+33*12)
	}
	if got := p.Height(); got != 15+33*12+150 {
		t.Errorf("Height = %v, expected %v", got, 15+33*12+150)
	}
	if got := p.Width(11); got != 140+5*263+50 {
		t.Errorf("Width = %v, expected %v", got, 140+5*263+50)
	}
	want := Rect{X: 140, Y: 15, Width: 5 * 263, Height: 33 * 12}
	if got := p.Plot(); got != want {
		t.Errorf("Plot = %+v, expected %+v", got, want)
	}
}

func TestYearTicks(t *testing.T) {
	p, err := NewPlanner(1753, 2015, DefaultLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ticks := p.YearTicks()
	if len(ticks) != 26 {
		t.Fatalf("expected 26 ticks, got %d: %+v", len(ticks), ticks)
	}
	for i, tick := range ticks {
		year := 1760 + 10*i
		if tick.Year != year || tick.Label != strconv.Itoa(year) {
			t.Errorf("tick %d: expected %d, got %+v", i, year, tick)
		}
		if tick.X != YearToX(year, 1753, 2015, DefaultLayout) {
			t.Errorf("tick %d: x %v does not match scale", i, tick.X)
		}
	}
}

func TestYearTicksSmallDomainAreDistinctIntegers(t *testing.T) {
	p, err := NewPlanner(1753, 1755, DefaultLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ticks := p.YearTicks()
	want := []int{1753, 1754, 1755}
	if len(ticks) != len(want) {
		t.Fatalf("expected %v, got %+v", want, ticks)
	}
	for i, y := range want {
		if ticks[i].Year != y {
			t.Errorf("tick %d: expected %d, got %d", i, y, ticks[i].Year)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	got := niceTicks(0, 1, 5)
	want := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if got := niceTicks(1, 10, 0); got != nil {
		t.Errorf("expected no ticks for count 0, got %v", got)
	}
}

func TestMonthTicks(t *testing.T) {
	p, _ := NewPlanner(1753, 2015, DefaultLayout)
	ticks := p.MonthTicks()
	if len(ticks) != 12 {
		t.Fatalf("expected 12 month ticks, got %d", len(ticks))
	}
	if ticks[0].Name != "January" || ticks[0].Y != 15+16.5 {
		t.Errorf("unexpected first tick %+v", ticks[0])
	}
	if ticks[11].Name != "December" || ticks[11].Month != 12 {
		t.Errorf("unexpected last tick %+v", ticks[11])
	}
}

func TestLegend(t *testing.T) {
	p, _ := NewPlanner(1753, 2015, DefaultLayout)
	entries := p.Legend(DefaultScale.Buckets())
	if len(entries) != len(defaultBuckets) {
		t.Fatalf("expected %d entries, got %d", len(defaultBuckets), len(entries))
	}

	labels := 0
	for i, e := range entries {
		if e.SwatchX != 140+40*float64(i) {
			t.Errorf("entry %d: expected swatch x %v, got %v", i, 140+40*float64(i), e.SwatchX)
		}
		if e.SwatchY != p.GridBottom()+DefaultLayout.LegendGap {
			t.Errorf("entry %d: unexpected swatch y %v", i, e.SwatchY)
		}
		if i == 0 {
			if e.Label != nil {
				t.Errorf("first entry must not be labelled, got %+v", e.Label)
			}
			continue
		}
		if e.Label == nil {
			t.Fatalf("entry %d: missing boundary label", i)
		}
		labels++
		if e.Label.Value != defaultBuckets[i].Min || e.Label.X != e.SwatchX {
			t.Errorf("entry %d: unexpected label %+v", i, e.Label)
		}
	}
	if labels != 10 {
		t.Errorf("expected 10 boundary labels, got %d", labels)
	}
	if entries[1].Label.Text != "2.8" || entries[10].Label.Text != "12.8" {
		t.Errorf("unexpected label text %q .. %q", entries[1].Label.Text, entries[10].Label.Text)
	}
}
