package heatmap

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// MonthlyRecord is one entry of the source dataset.
type MonthlyRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1..12
	Variance float64 `json:"variance"`
}

// Dataset is the deserialized global temperature document.
// It is treated as read-only once loaded.
type Dataset struct {
	BaseTemperature float64         `json:"baseTemperature"`
	MonthlyVariance []MonthlyRecord `json:"monthlyVariance"`
}

// DerivedMonth is a record with its display values computed.
type DerivedMonth struct {
	Month       int     `json:"month"`
	Variance    float64 `json:"variance"`    // rounded to 1 decimal
	Temperature float64 `json:"temperature"` // base + variance, rounded to 2 decimals
}

// YearGroup holds the derived months of one calendar year.
type YearGroup struct {
	Year        int            `json:"year"`
	MonthlyData []DerivedMonth `json:"monthlyData"`
}

// Color is an opaque RGB display color.
type Color struct {
	R, G, B uint8
}

// String renders the color as a CSS rgb() value.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalText encodes the color as its CSS string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a CSS rgb() value.
func (c *Color) UnmarshalText(text []byte) error {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(text), "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", string(text), err)
	}
	c.R, c.G, c.B = r, g, b
	return nil
}

// NRGBA converts to an opaque image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorBucket is a half-open temperature interval [Min, Max) mapped to one color.
type ColorBucket struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color Color   `json:"color"`
}

type bucketJSON struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Color Color    `json:"color"`
}

// MarshalJSON writes unbounded ends as null, since JSON has no infinity.
func (b ColorBucket) MarshalJSON() ([]byte, error) {
	out := bucketJSON{Color: b.Color}
	if !math.IsInf(b.Min, 0) {
		lo := b.Min
		out.Min = &lo
	}
	if !math.IsInf(b.Max, 0) {
		hi := b.Max
		out.Max = &hi
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads null bounds back as -Inf and +Inf.
func (b *ColorBucket) UnmarshalJSON(data []byte) error {
	var in bucketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.Min, b.Max, b.Color = math.Inf(-1), math.Inf(1), in.Color
	if in.Min != nil {
		b.Min = *in.Min
	}
	if in.Max != nil {
		b.Max = *in.Max
	}
	return nil
}

// RenderCell is one rectangle of the heat-map grid.
type RenderCell struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Color       Color   `json:"color"`
	Bucket      int     `json:"bucket"`
	Temperature float64 `json:"temperature"`
	Variance    float64 `json:"variance"`
}
