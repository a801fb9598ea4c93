package heatmap

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the derived values of a chart.
type Stats struct {
	MinTemperature  float64 `json:"minTemperature"`
	MaxTemperature  float64 `json:"maxTemperature"`
	MeanTemperature float64 `json:"meanTemperature"`
	MinVariance     float64 `json:"minVariance"`
	MaxVariance     float64 `json:"maxVariance"`
}

// ComputeStats returns zero Stats for an empty group list.
func ComputeStats(groups []YearGroup) Stats {
	var temps, variances []float64
	for _, g := range groups {
		for _, m := range g.MonthlyData {
			temps = append(temps, m.Temperature)
			variances = append(variances, m.Variance)
		}
	}
	if len(temps) == 0 {
		return Stats{}
	}

	return Stats{
		MinTemperature:  floats.Min(temps),
		MaxTemperature:  floats.Max(temps),
		MeanTemperature: scalar.Round(stat.Mean(temps, nil), temperaturePlaces),
		MinVariance:     floats.Min(variances),
		MaxVariance:     floats.Max(variances),
	}
}
