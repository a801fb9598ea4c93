package heatmap

import (
	"fmt"
	"strconv"
)

// Tooltip is the text shown when hovering a cell.
type Tooltip struct {
	Heading     string `json:"heading"`     // "1753 - January"
	Temperature string `json:"temperature"` // "7.29°C"
	Variance    string `json:"variance"`    // "-1.4°C", "+0.3°C"
}

// Tooltip formats the hover text for the cell.
func (c RenderCell) Tooltip() Tooltip {
	variance := formatFloat(c.Variance) + "°C"
	if c.Variance > 0 {
		variance = "+" + variance
	}
	return Tooltip{
		Heading:     fmt.Sprintf("%d - %s", c.Year, MonthName(c.Month)),
		Temperature: formatFloat(c.Temperature) + "°C",
		Variance:    variance,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
